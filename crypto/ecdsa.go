package crypto

import (
	"math/big"
	"strconv"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	quillerr "github.com/mrz1836/quill/pkg/errors"
)

// PrivateKeyLength is the byte length of a secp256k1 private scalar.
const PrivateKeyLength = 32

// SignatureLength is the byte length of a recoverable signature [R || S || V].
const SignatureLength = 65

// compactRecoveryOffset is the offset SignCompact/RecoverCompact apply to the
// recovery id in their leading byte.
const compactRecoveryOffset = 27

//nolint:gochecknoglobals // curve order constants, computed once
var (
	curveOrder     = secp256k1.S256().N
	halfCurveOrder = new(big.Int).Rsh(secp256k1.S256().N, 1)
)

// SignRecoverable signs a 32-byte digest with the private key and returns a
// 65-byte signature in Ethereum's [R || S || V] layout, where V is the
// recovery id (0 or 1).
//
// Signing is deterministic (RFC 6979 nonces): the same digest and key always
// produce the same signature. S is canonicalized to the lower half of the
// curve order, flipping the recovery id's parity when the canonicalization
// negates S.
func SignRecoverable(digest, privateKey []byte) ([]byte, error) {
	if len(digest) != HashLength {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidDigest, map[string]string{
			"length": strconv.Itoa(len(digest)),
		})
	}

	priv, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()

	// SignCompact returns [V || R || S] with V = recovery id + 27
	sig := ecdsa.SignCompact(priv, digest, false)
	if len(sig) != SignatureLength {
		return nil, quillerr.ErrInvalidSignature
	}

	recoveryID := sig[0] - compactRecoveryOffset
	result := make([]byte, SignatureLength)
	copy(result[0:32], sig[1:33])
	copy(result[32:64], sig[33:65])
	result[64] = recoveryID

	// S must never leave here in high form, whatever the primitive returned
	canonicalizeLowS(result)

	return result, nil
}

// RecoverPublicKey recovers the uncompressed public key (65 bytes,
// 0x04 || X || Y) that produced the given [R || S || V] signature over digest.
func RecoverPublicKey(digest, sig []byte) ([]byte, error) {
	if len(digest) != HashLength {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidDigest, map[string]string{
			"length": strconv.Itoa(len(digest)),
		})
	}
	if len(sig) != SignatureLength {
		return nil, quillerr.WithDetails(quillerr.ErrRecoveryFailed, map[string]string{
			"reason": "signature must be 65 bytes",
		})
	}
	if sig[64] > 1 {
		return nil, quillerr.ErrInvalidRecoveryID
	}

	r := new(big.Int).SetBytes(sig[0:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if r.Sign() == 0 || s.Sign() == 0 {
		return nil, quillerr.WithDetails(quillerr.ErrRecoveryFailed, map[string]string{
			"reason": "zero signature component",
		})
	}
	if r.Cmp(curveOrder) >= 0 || s.Cmp(curveOrder) >= 0 {
		return nil, quillerr.WithDetails(quillerr.ErrRecoveryFailed, map[string]string{
			"reason": "signature component exceeds curve order",
		})
	}

	// RecoverCompact expects [V || R || S] with V = recovery id + 27
	compact := make([]byte, SignatureLength)
	compact[0] = sig[64] + compactRecoveryOffset
	copy(compact[1:33], sig[0:32])
	copy(compact[33:65], sig[32:64])

	pub, _, err := ecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return nil, quillerr.Wrap(quillerr.ErrRecoveryFailed, "recovering public key")
	}

	return pub.SerializeUncompressed(), nil
}

// ValidatePrivateKey checks that the key is a valid nonzero scalar less than
// the curve order.
func ValidatePrivateKey(privateKey []byte) error {
	priv, err := parsePrivateKey(privateKey)
	if err != nil {
		return err
	}
	priv.Zero()
	return nil
}

// DerivePublicKey derives the uncompressed public key (65 bytes) from a
// private key.
func DerivePublicKey(privateKey []byte) ([]byte, error) {
	priv, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()

	return priv.PubKey().SerializeUncompressed(), nil
}

// IsLowS reports whether the S component of a 65-byte signature lies in the
// lower half of the curve order.
func IsLowS(sig []byte) bool {
	if len(sig) != SignatureLength {
		return false
	}
	s := new(big.Int).SetBytes(sig[32:64])
	return s.Cmp(halfCurveOrder) <= 0
}

// parsePrivateKey validates the raw scalar and lifts it into a decred private
// key. Callers must Zero() the result when done.
func parsePrivateKey(privateKey []byte) (*secp256k1.PrivateKey, error) {
	if len(privateKey) != PrivateKeyLength {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidKey, map[string]string{
			"reason": "key must be 32 bytes",
		})
	}

	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(privateKey)
	if overflow {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidKey, map[string]string{
			"reason": "key exceeds curve order",
		})
	}
	if scalar.IsZero() {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidKey, map[string]string{
			"reason": "key is zero",
		})
	}

	priv := secp256k1.NewPrivateKey(&scalar)
	scalar.Zero()
	return priv, nil
}

// canonicalizeLowS rewrites sig in place so S is in the lower half of the
// curve order, flipping the recovery id when S is negated.
func canonicalizeLowS(sig []byte) {
	s := new(big.Int).SetBytes(sig[32:64])
	if s.Cmp(halfCurveOrder) <= 0 {
		return
	}

	s.Sub(curveOrder, s)
	sBytes := s.FillBytes(make([]byte, 32))
	copy(sig[32:64], sBytes)
	sig[64] ^= 1
}


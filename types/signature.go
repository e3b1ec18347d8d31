package types

import (
	"strconv"

	"github.com/mrz1836/quill/crypto"
	quillerr "github.com/mrz1836/quill/pkg/errors"
)

// Signature is an ECDSA signature triple over secp256k1. S is always in low-s
// form; RecoveryID is 0 or 1 and disambiguates which public key the signature
// corresponds to.
type Signature struct {
	R          UInt256
	S          UInt256
	RecoveryID byte
}

// SignatureFromBytes builds a Signature from the 65-byte [R || S || V] layout
// produced by the signing primitive.
func SignatureFromBytes(sig []byte) (Signature, error) {
	if len(sig) != crypto.SignatureLength {
		return Signature{}, quillerr.WithDetails(quillerr.ErrInvalidSignature, map[string]string{
			"reason": "signature must be 65 bytes",
		})
	}

	r, err := UInt256FromBytes(sig[0:32])
	if err != nil {
		return Signature{}, err
	}
	s, err := UInt256FromBytes(sig[32:64])
	if err != nil {
		return Signature{}, err
	}

	out := Signature{R: r, S: s, RecoveryID: sig[64]}
	if err := out.Validate(); err != nil {
		return Signature{}, err
	}
	return out, nil
}

// Validate checks the recovery id is 0 or 1.
func (sig Signature) Validate() error {
	if sig.RecoveryID > 1 {
		return quillerr.WithDetails(quillerr.ErrInvalidRecoveryID, map[string]string{
			"recovery_id": strconv.Itoa(int(sig.RecoveryID)),
		})
	}
	return nil
}

// Bytes returns the 65-byte [R || S || V] layout.
func (sig Signature) Bytes() []byte {
	out := make([]byte, crypto.SignatureLength)
	r := sig.R.Bytes32()
	s := sig.S.Bytes32()
	copy(out[0:32], r[:])
	copy(out[32:64], s[:])
	out[64] = sig.RecoveryID
	return out
}

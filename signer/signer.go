// Package signer produces and verifies transaction signatures: deterministic
// ECDSA signing over the transaction digest, assembly of the signed
// transaction with its derived v value, sender recovery, and parsing of
// signed wire bytes back into transactions.
package signer

import (
	"github.com/mrz1836/quill/crypto"
	"github.com/mrz1836/quill/types"
)

// Signer owns a private key for its lifetime. The key lives in secure memory
// (locked against swapping where supported) and is zeroed on Destroy. No other
// component retains or copies the key.
type Signer struct {
	key     *crypto.SecureKey
	pubKey  []byte
	address types.Address
}

// New creates a Signer from a 32-byte private key. The key is validated
// (nonzero scalar below the curve order), copied into secure memory, and the
// caller's slice is zeroed.
func New(privateKey []byte) (*Signer, error) {
	pub, err := crypto.DerivePublicKey(privateKey)
	if err != nil {
		return nil, err
	}

	addrBytes, err := crypto.PublicKeyToAddress(pub)
	if err != nil {
		return nil, err
	}

	key, err := crypto.NewSecureKey(privateKey)
	if err != nil {
		return nil, err
	}

	return &Signer{
		key:     key,
		pubKey:  pub,
		address: types.BytesToAddress(addrBytes),
	}, nil
}

// Sign validates the transaction, hashes its signing bytes, and returns the
// canonical signature triple. Signing is deterministic: the same transaction
// and key always produce the same signature.
func (s *Signer) Sign(tx types.Transaction) (types.Signature, error) {
	if err := tx.Validate(); err != nil {
		return types.Signature{}, err
	}

	keyBytes, err := s.key.Bytes()
	if err != nil {
		return types.Signature{}, err
	}

	digest := SigningDigest(tx)
	sig, err := crypto.SignRecoverable(digest, keyBytes)
	if err != nil {
		return types.Signature{}, err
	}

	return types.SignatureFromBytes(sig)
}

// SignAndAssemble signs the transaction and assembles the broadcastable
// result in one step.
func (s *Signer) SignAndAssemble(tx types.Transaction) (*SignedTransaction, error) {
	sig, err := s.Sign(tx)
	if err != nil {
		return nil, err
	}
	return Assemble(tx, sig)
}

// Address returns the address derived from the signer's public key.
func (s *Signer) Address() types.Address {
	return s.address
}

// PublicKey returns a copy of the uncompressed public key.
func (s *Signer) PublicKey() []byte {
	out := make([]byte, len(s.pubKey))
	copy(out, s.pubKey)
	return out
}

// Destroy zeroes the key material. The Signer is unusable afterwards; Sign
// returns an error.
func (s *Signer) Destroy() {
	s.key.Destroy()
}

// Sign signs a transaction with a raw private key. The key slice is zeroed
// before returning, on every path.
func Sign(tx types.Transaction, privateKey []byte) (types.Signature, error) {
	defer crypto.Zero(privateKey)

	if err := tx.Validate(); err != nil {
		return types.Signature{}, err
	}

	digest := SigningDigest(tx)
	sig, err := crypto.SignRecoverable(digest, privateKey)
	if err != nil {
		return types.Signature{}, err
	}

	return types.SignatureFromBytes(sig)
}

// SigningDigest returns the 32-byte digest a signature over the transaction
// commits to: the Keccak-256 hash of the signing bytes, type marker included
// for typed transactions.
func SigningDigest(tx types.Transaction) []byte {
	return crypto.Keccak256(tx.SigningBytes())
}

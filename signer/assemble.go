package signer

import (
	"encoding/hex"

	"github.com/mrz1836/quill/crypto"
	"github.com/mrz1836/quill/types"
)

// SignedTransaction is a transaction merged with its signature and derived v
// value. It is constructed once by Assemble and immutable thereafter; its only
// further transformation is serialization for broadcast.
type SignedTransaction struct {
	tx   types.Transaction
	sig  types.Signature
	v    types.UInt256
	wire []byte
}

// Assemble merges a transaction with its signature triple: validates the
// recovery id, derives v per the variant's rule (chain-id folded for legacy,
// the bare recovery id for dynamic-fee), and captures the final wire encoding.
func Assemble(tx types.Transaction, sig types.Signature) (*SignedTransaction, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	v, err := tx.SignatureV(sig.RecoveryID)
	if err != nil {
		return nil, err
	}

	wire, err := tx.WireBytes(sig)
	if err != nil {
		return nil, err
	}

	return &SignedTransaction{
		tx:   tx,
		sig:  sig,
		v:    v,
		wire: wire,
	}, nil
}

// Transaction returns the underlying unsigned transaction.
func (st *SignedTransaction) Transaction() types.Transaction {
	return st.tx
}

// Signature returns the signature triple.
func (st *SignedTransaction) Signature() types.Signature {
	return st.sig
}

// V returns the derived wire v value.
func (st *SignedTransaction) V() types.UInt256 {
	return st.v
}

// R returns the signature's r component.
func (st *SignedTransaction) R() types.UInt256 {
	return st.sig.R
}

// S returns the signature's s component.
func (st *SignedTransaction) S() types.UInt256 {
	return st.sig.S
}

// WireBytes returns the exact byte sequence to hand to a broadcast interface,
// including the type marker for typed transactions. Callers must not mutate
// the returned slice.
func (st *SignedTransaction) WireBytes() []byte {
	return st.wire
}

// Hash returns the transaction hash: the Keccak-256 of the wire bytes.
func (st *SignedTransaction) Hash() []byte {
	return crypto.Keccak256(st.wire)
}

// HashHex returns the transaction hash as a 0x-prefixed hex string.
func (st *SignedTransaction) HashHex() string {
	return "0x" + hex.EncodeToString(st.Hash())
}

// RecoverSender recovers the sender address from the signature: the inverse
// of signing, used for self-verification. Fails with ErrRecoveryFailed when
// the signature does not correspond to a valid curve point.
func RecoverSender(st *SignedTransaction) (types.Address, error) {
	digest := SigningDigest(st.tx)

	pub, err := crypto.RecoverPublicKey(digest, st.sig.Bytes())
	if err != nil {
		return types.Address{}, err
	}

	return types.PublicKeyToAddress(pub)
}

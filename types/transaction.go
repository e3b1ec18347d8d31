package types

import (
	"math/big"

	"github.com/mrz1836/quill/rlp"
	quillerr "github.com/mrz1836/quill/pkg/errors"
)

// Transaction type markers. Legacy transactions carry no marker on the wire;
// dynamic-fee transactions are prefixed with 0x02 before the RLP list, and the
// marker participates in the signing digest.
const (
	LegacyTxType     byte = 0x00
	DynamicFeeTxType byte = 0x02
)

// EIP-155 v-encoding constants for legacy transactions.
const (
	legacyVBase    = 27
	eip155VBase    = 35
	eip155ChainMul = 2
)

// Transaction is the tagged variant over the supported transaction shapes.
// Implementations project themselves into their signable and final RLP forms;
// field order within each variant is fixed and defines the RLP list order.
type Transaction interface {
	// Type returns the variant's wire marker (LegacyTxType or DynamicFeeTxType).
	Type() byte

	// Validate checks the variant's field constraints.
	Validate() error

	// SigningItem returns the RLP list of fields covered by the signature.
	SigningItem() rlp.Item

	// SigningBytes returns the exact byte sequence hashed into the signing
	// digest, including the type marker for typed transactions.
	SigningBytes() []byte

	// SignatureV derives the wire v value for a recovery id per the variant's
	// rule.
	SignatureV(recoveryID byte) (UInt256, error)

	// WireItem returns the final RLP list with the signature fields appended.
	WireItem(sig Signature) (rlp.Item, error)

	// WireBytes returns the broadcastable encoding, including the type marker
	// for typed transactions.
	WireBytes(sig Signature) ([]byte, error)
}

// LegacyTx is the original transaction format. A nil To denotes contract
// creation and is encoded as an empty byte string, distinct from the zero
// address. A nil ChainID selects pre-EIP-155 signing (no replay protection).
type LegacyTx struct {
	Nonce    UInt256
	GasPrice UInt256
	GasLimit UInt256
	To       *Address // nil for contract creation
	Value    UInt256
	Data     []byte
	ChainID  *UInt256 // nil for pre-EIP-155
}

// NewLegacyTx creates a legacy transaction with EIP-155 replay protection.
func NewLegacyTx(nonce UInt256, to *Address, value UInt256, gasLimit, gasPrice UInt256, data []byte, chainID UInt256) *LegacyTx {
	return &LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
		To:       to,
		Value:    value,
		Data:     data,
		ChainID:  &chainID,
	}
}

// Type returns LegacyTxType.
func (tx *LegacyTx) Type() byte {
	return LegacyTxType
}

// Validate checks field constraints. Legacy transactions have none beyond
// what the types already guarantee.
func (tx *LegacyTx) Validate() error {
	return nil
}

// SigningItem returns the signable field list. With a chain id present, the
// EIP-155 convention appends chain_id, 0, 0.
func (tx *LegacyTx) SigningItem() rlp.Item {
	elems := []rlp.Item{
		tx.Nonce.Item(),
		tx.GasPrice.Item(),
		tx.GasLimit.Item(),
		addressItem(tx.To),
		tx.Value.Item(),
		rlp.BytesItem(tx.Data),
	}
	if tx.ChainID != nil {
		elems = append(elems,
			tx.ChainID.Item(),
			rlp.BytesItem(nil),
			rlp.BytesItem(nil),
		)
	}
	return rlp.ListItem(elems...)
}

// SigningBytes returns the RLP encoding of the signable list. Legacy
// transactions carry no type marker.
func (tx *LegacyTx) SigningBytes() []byte {
	return rlp.Encode(tx.SigningItem())
}

// SignatureV derives v: recovery_id + 35 + 2*chain_id with a chain id, or
// recovery_id + 27 without one.
func (tx *LegacyTx) SignatureV(recoveryID byte) (UInt256, error) {
	if recoveryID > 1 {
		return UInt256{}, quillerr.ErrInvalidRecoveryID
	}

	if tx.ChainID == nil {
		return NewUInt256(uint64(recoveryID) + legacyVBase), nil
	}

	// v = recovery_id + 35 + 2*chain_id, range-checked at this boundary
	v := new(big.Int).Mul(tx.ChainID.Big(), big.NewInt(eip155ChainMul))
	v.Add(v, big.NewInt(int64(recoveryID)+eip155VBase))
	return UInt256FromBig(v)
}

// WireItem returns the final field list: the six legacy fields plus v, r, s.
func (tx *LegacyTx) WireItem(sig Signature) (rlp.Item, error) {
	v, err := tx.SignatureV(sig.RecoveryID)
	if err != nil {
		return rlp.Item{}, err
	}

	return rlp.ListItem(
		tx.Nonce.Item(),
		tx.GasPrice.Item(),
		tx.GasLimit.Item(),
		addressItem(tx.To),
		tx.Value.Item(),
		rlp.BytesItem(tx.Data),
		v.Item(),
		sig.R.Item(),
		sig.S.Item(),
	), nil
}

// WireBytes returns the broadcastable RLP encoding of the signed transaction.
func (tx *LegacyTx) WireBytes(sig Signature) ([]byte, error) {
	item, err := tx.WireItem(sig)
	if err != nil {
		return nil, err
	}
	return rlp.Encode(item), nil
}

// addressItem projects an optional address field. Contract creation (nil) is
// the empty byte string, never 20 zero bytes.
func addressItem(to *Address) rlp.Item {
	if to == nil {
		return rlp.BytesItem(nil)
	}
	return rlp.BytesItem(to.Bytes())
}

package types

import (
	"github.com/mrz1836/quill/rlp"
	quillerr "github.com/mrz1836/quill/pkg/errors"
)

// AccessTuple is one entry of an access list: an address and the storage keys
// the transaction intends to touch there.
type AccessTuple struct {
	Address     Address
	StorageKeys []UInt256
}

// AccessList is an ordered sequence of access tuples.
type AccessList []AccessTuple

// Item projects the access list into its RLP form. Storage keys encode as
// 32-byte left-padded strings per EIP-2930, not as minimal integers.
func (al AccessList) Item() rlp.Item {
	entries := make([]rlp.Item, len(al))
	for i, tuple := range al {
		keys := make([]rlp.Item, len(tuple.StorageKeys))
		for j, key := range tuple.StorageKeys {
			k := key.Bytes32()
			keys[j] = rlp.BytesItem(k[:])
		}
		entries[i] = rlp.ListItem(
			rlp.BytesItem(tuple.Address.Bytes()),
			rlp.ListItem(keys...),
		)
	}
	return rlp.ListItem(entries...)
}

// DynamicFeeTx is the EIP-1559 fee-market transaction: separate priority fee
// and fee cap, an access list, and a 0x02 type marker on the wire. A nil To
// denotes contract creation.
type DynamicFeeTx struct {
	ChainID    UInt256
	Nonce      UInt256
	GasTipCap  UInt256 // max priority fee per gas
	GasFeeCap  UInt256 // max fee per gas
	GasLimit   UInt256
	To         *Address // nil for contract creation
	Value      UInt256
	Data       []byte
	AccessList AccessList
}

// NewDynamicFeeTx creates a dynamic-fee transaction, validating the fee
// ordering constraint.
func NewDynamicFeeTx(chainID, nonce UInt256, to *Address, value UInt256, gasLimit, gasTipCap, gasFeeCap UInt256, data []byte, accessList AccessList) (*DynamicFeeTx, error) {
	tx := &DynamicFeeTx{
		ChainID:    chainID,
		Nonce:      nonce,
		GasTipCap:  gasTipCap,
		GasFeeCap:  gasFeeCap,
		GasLimit:   gasLimit,
		To:         to,
		Value:      value,
		Data:       data,
		AccessList: accessList,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Type returns DynamicFeeTxType.
func (tx *DynamicFeeTx) Type() byte {
	return DynamicFeeTxType
}

// Validate checks that the priority fee does not exceed the fee cap.
func (tx *DynamicFeeTx) Validate() error {
	if tx.GasTipCap.Cmp(tx.GasFeeCap) > 0 {
		return quillerr.WithDetails(quillerr.ErrInvalidFeeOrdering, map[string]string{
			"max_priority_fee": tx.GasTipCap.String(),
			"max_fee":          tx.GasFeeCap.String(),
		})
	}
	return nil
}

// SigningItem returns the signable field list in EIP-1559 order.
func (tx *DynamicFeeTx) SigningItem() rlp.Item {
	return rlp.ListItem(
		tx.ChainID.Item(),
		tx.Nonce.Item(),
		tx.GasTipCap.Item(),
		tx.GasFeeCap.Item(),
		tx.GasLimit.Item(),
		addressItem(tx.To),
		tx.Value.Item(),
		rlp.BytesItem(tx.Data),
		tx.AccessList.Item(),
	)
}

// SigningBytes returns the type marker followed by the RLP encoding of the
// signable list. The marker participates in the signing digest.
func (tx *DynamicFeeTx) SigningBytes() []byte {
	encoded := rlp.Encode(tx.SigningItem())
	out := make([]byte, 0, 1+len(encoded))
	out = append(out, DynamicFeeTxType)
	return append(out, encoded...)
}

// SignatureV derives v, which for typed transactions is the recovery id
// itself with no chain-id folding.
func (tx *DynamicFeeTx) SignatureV(recoveryID byte) (UInt256, error) {
	if recoveryID > 1 {
		return UInt256{}, quillerr.ErrInvalidRecoveryID
	}
	return NewUInt256(uint64(recoveryID)), nil
}

// WireItem returns the final field list: the nine fields plus v, r, s.
func (tx *DynamicFeeTx) WireItem(sig Signature) (rlp.Item, error) {
	v, err := tx.SignatureV(sig.RecoveryID)
	if err != nil {
		return rlp.Item{}, err
	}

	return rlp.ListItem(
		tx.ChainID.Item(),
		tx.Nonce.Item(),
		tx.GasTipCap.Item(),
		tx.GasFeeCap.Item(),
		tx.GasLimit.Item(),
		addressItem(tx.To),
		tx.Value.Item(),
		rlp.BytesItem(tx.Data),
		tx.AccessList.Item(),
		v.Item(),
		sig.R.Item(),
		sig.S.Item(),
	), nil
}

// WireBytes returns the broadcastable encoding: the type marker followed by
// the RLP list.
func (tx *DynamicFeeTx) WireBytes(sig Signature) ([]byte, error) {
	item, err := tx.WireItem(sig)
	if err != nil {
		return nil, err
	}

	encoded := rlp.Encode(item)
	out := make([]byte, 0, 1+len(encoded))
	out = append(out, DynamicFeeTxType)
	return append(out, encoded...), nil
}

package signer

import (
	"math/big"
	"strconv"

	quillerr "github.com/mrz1836/quill/pkg/errors"
	"github.com/mrz1836/quill/rlp"
	"github.com/mrz1836/quill/types"
)

// Expected field counts for each variant's signed wire list.
const (
	legacyFieldCount     = 9
	dynamicFeeFieldCount = 12
)

// ParseSignedTransaction is the inverse of WireBytes: it decodes signed wire
// bytes, validates element count and order against the variant's schema, and
// reassembles the transaction with its signature. The reconstructed value
// re-derives v, so bytes produced by WireBytes always round-trip.
func ParseSignedTransaction(b []byte) (*SignedTransaction, error) {
	if len(b) == 0 {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
			"reason": "empty input",
		})
	}

	switch {
	case b[0] == types.DynamicFeeTxType:
		return parseDynamicFee(b[1:])
	case b[0] >= 0xc0:
		// Legacy transactions are a bare RLP list, no marker
		return parseLegacy(b)
	default:
		return nil, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
			"reason": "unsupported transaction type marker",
			"marker": strconv.Itoa(int(b[0])),
		})
	}
}

func parseLegacy(b []byte) (*SignedTransaction, error) {
	elems, err := decodeFieldList(b, legacyFieldCount)
	if err != nil {
		return nil, err
	}

	nonce, err := uintField(elems[0], "nonce")
	if err != nil {
		return nil, err
	}
	gasPrice, err := uintField(elems[1], "gas_price")
	if err != nil {
		return nil, err
	}
	gasLimit, err := uintField(elems[2], "gas_limit")
	if err != nil {
		return nil, err
	}
	to, err := addressField(elems[3])
	if err != nil {
		return nil, err
	}
	value, err := uintField(elems[4], "value")
	if err != nil {
		return nil, err
	}
	data, err := bytesField(elems[5], "data")
	if err != nil {
		return nil, err
	}
	v, err := uintField(elems[6], "v")
	if err != nil {
		return nil, err
	}
	r, err := uintField(elems[7], "r")
	if err != nil {
		return nil, err
	}
	s, err := uintField(elems[8], "s")
	if err != nil {
		return nil, err
	}

	chainID, recoveryID, err := splitLegacyV(v)
	if err != nil {
		return nil, err
	}

	tx := &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
		To:       to,
		Value:    value,
		Data:     data,
		ChainID:  chainID,
	}

	return Assemble(tx, types.Signature{R: r, S: s, RecoveryID: recoveryID})
}

func parseDynamicFee(b []byte) (*SignedTransaction, error) {
	elems, err := decodeFieldList(b, dynamicFeeFieldCount)
	if err != nil {
		return nil, err
	}

	chainID, err := uintField(elems[0], "chain_id")
	if err != nil {
		return nil, err
	}
	nonce, err := uintField(elems[1], "nonce")
	if err != nil {
		return nil, err
	}
	gasTipCap, err := uintField(elems[2], "max_priority_fee")
	if err != nil {
		return nil, err
	}
	gasFeeCap, err := uintField(elems[3], "max_fee")
	if err != nil {
		return nil, err
	}
	gasLimit, err := uintField(elems[4], "gas_limit")
	if err != nil {
		return nil, err
	}
	to, err := addressField(elems[5])
	if err != nil {
		return nil, err
	}
	value, err := uintField(elems[6], "value")
	if err != nil {
		return nil, err
	}
	data, err := bytesField(elems[7], "data")
	if err != nil {
		return nil, err
	}
	accessList, err := parseAccessList(elems[8])
	if err != nil {
		return nil, err
	}
	v, err := uintField(elems[9], "v")
	if err != nil {
		return nil, err
	}
	r, err := uintField(elems[10], "r")
	if err != nil {
		return nil, err
	}
	s, err := uintField(elems[11], "s")
	if err != nil {
		return nil, err
	}

	// Typed transactions carry the recovery id directly in v
	vVal, err := v.Uint64()
	if err != nil || vVal > 1 {
		return nil, quillerr.ErrInvalidRecoveryID
	}

	tx := &types.DynamicFeeTx{
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

	return Assemble(tx, types.Signature{R: r, S: s, RecoveryID: byte(vVal)})
}

// splitLegacyV recovers the chain id and recovery id from a legacy v value:
// 27/28 for pre-EIP-155, recovery_id + 35 + 2*chain_id otherwise.
func splitLegacyV(v types.UInt256) (*types.UInt256, byte, error) {
	vBig := v.Big()

	if vBig.Cmp(big.NewInt(27)) == 0 || vBig.Cmp(big.NewInt(28)) == 0 {
		return nil, byte(vBig.Int64() - 27), nil
	}

	if vBig.Cmp(big.NewInt(35)) < 0 {
		return nil, 0, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
			"reason": "invalid legacy v value",
			"v":      v.String(),
		})
	}

	shifted := new(big.Int).Sub(vBig, big.NewInt(35))
	recoveryID := byte(new(big.Int).Mod(shifted, big.NewInt(2)).Int64())
	chainBig := shifted.Rsh(shifted.Sub(shifted, big.NewInt(int64(recoveryID))), 1)

	chainID, err := types.UInt256FromBig(chainBig)
	if err != nil {
		return nil, 0, err
	}
	return &chainID, recoveryID, nil
}

// decodeFieldList decodes b as a single RLP list with exactly n elements.
func decodeFieldList(b []byte, n int) ([]rlp.Item, error) {
	item, err := rlp.DecodeFull(b)
	if err != nil {
		return nil, err
	}
	if !item.IsList() {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
			"reason": "expected a field list",
		})
	}
	elems := item.List()
	if len(elems) != n {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
			"reason":   "unexpected field count",
			"expected": strconv.Itoa(n),
			"actual":   strconv.Itoa(len(elems)),
		})
	}
	return elems, nil
}

// uintField reads an integer field. Integers are minimal on the wire: a
// leading zero byte is rejected, not normalized.
func uintField(item rlp.Item, name string) (types.UInt256, error) {
	if item.IsList() {
		return types.UInt256{}, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
			"reason": "expected an integer field",
			"field":  name,
		})
	}

	b := item.Bytes()
	if len(b) > 0 && b[0] == 0 {
		return types.UInt256{}, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
			"reason": "integer field with leading zero bytes",
			"field":  name,
		})
	}
	return types.UInt256FromBytes(b)
}

// bytesField reads an opaque byte-string field.
func bytesField(item rlp.Item, name string) ([]byte, error) {
	if item.IsList() {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
			"reason": "expected a byte-string field",
			"field":  name,
		})
	}
	return item.Bytes(), nil
}

// addressField reads an optional recipient: the empty string is contract
// creation, otherwise exactly 20 bytes.
func addressField(item rlp.Item) (*types.Address, error) {
	if item.IsList() {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
			"reason": "expected an address field",
		})
	}

	b := item.Bytes()
	switch len(b) {
	case 0:
		return nil, nil //nolint:nilnil // nil address is contract creation
	case types.AddressLength:
		addr := types.BytesToAddress(b)
		return &addr, nil
	default:
		return nil, quillerr.WithDetails(quillerr.ErrInvalidAddress, map[string]string{
			"reason": "address must be empty or 20 bytes",
		})
	}
}

// parseAccessList reads the EIP-2930 access list: entries of an address and
// its 32-byte storage keys.
func parseAccessList(item rlp.Item) (types.AccessList, error) {
	if !item.IsList() {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
			"reason": "expected an access list",
		})
	}

	entries := item.List()
	accessList := make(types.AccessList, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsList() || entry.Len() != 2 {
			return nil, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
				"reason": "access list entry must be an address and key list",
			})
		}

		pair := entry.List()
		addrBytes := pair[0].Bytes()
		if pair[0].IsList() || len(addrBytes) != types.AddressLength {
			return nil, quillerr.WithDetails(quillerr.ErrInvalidAddress, map[string]string{
				"reason": "access list address must be 20 bytes",
			})
		}

		if !pair[1].IsList() {
			return nil, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
				"reason": "access list storage keys must be a list",
			})
		}

		keys := make([]types.UInt256, 0, pair[1].Len())
		for _, keyItem := range pair[1].List() {
			keyBytes := keyItem.Bytes()
			if keyItem.IsList() || len(keyBytes) != 32 {
				return nil, quillerr.WithDetails(quillerr.ErrInvalidTransaction, map[string]string{
					"reason": "storage key must be 32 bytes",
				})
			}
			key, err := types.UInt256FromBytes(keyBytes)
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}

		accessList = append(accessList, types.AccessTuple{
			Address:     types.BytesToAddress(addrBytes),
			StorageKeys: keys,
		})
	}

	return accessList, nil
}

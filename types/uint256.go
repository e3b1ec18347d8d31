// Package types provides the primitive value types and transaction models for
// quill: 256-bit unsigned integers, addresses, signatures, and the legacy and
// dynamic-fee transaction variants with their canonical RLP projections.
package types

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"github.com/mrz1836/quill/rlp"
	quillerr "github.com/mrz1836/quill/pkg/errors"
)

// MaxUInt256Bytes is the widest big-endian magnitude a UInt256 can hold.
const MaxUInt256Bytes = 32

// UInt256 is an immutable 256-bit unsigned integer. The zero value is the
// number zero. Construction from external input is range-checked; overflow is
// never silently wrapped.
type UInt256 struct {
	i uint256.Int
}

// NewUInt256 lifts a uint64 into a UInt256.
func NewUInt256(v uint64) UInt256 {
	var u UInt256
	u.i.SetUint64(v)
	return u
}

// UInt256FromBytes interprets b as a big-endian magnitude.
// Fails with ErrValueOutOfRange when the magnitude exceeds 32 significant
// bytes. Leading zero bytes are ignored.
func UInt256FromBytes(b []byte) (UInt256, error) {
	trimmed := b
	for len(trimmed) > 0 && trimmed[0] == 0 {
		trimmed = trimmed[1:]
	}
	if len(trimmed) > MaxUInt256Bytes {
		return UInt256{}, quillerr.WithDetails(quillerr.ErrValueOutOfRange, map[string]string{
			"significant_bytes": strconv.Itoa(len(trimmed)),
		})
	}

	var u UInt256
	u.i.SetBytes(trimmed)
	return u, nil
}

// UInt256FromBig converts a big.Int, rejecting negatives and values beyond
// 2^256-1 with ErrValueOutOfRange.
func UInt256FromBig(v *big.Int) (UInt256, error) {
	if v == nil {
		return UInt256{}, nil
	}
	if v.Sign() < 0 {
		return UInt256{}, quillerr.WithDetails(quillerr.ErrValueOutOfRange, map[string]string{
			"reason": "negative value",
		})
	}

	i, overflow := uint256.FromBig(v)
	if overflow {
		return UInt256{}, quillerr.WithDetails(quillerr.ErrValueOutOfRange, map[string]string{
			"reason": "value exceeds 256 bits",
		})
	}
	return UInt256{i: *i}, nil
}

// UInt256FromHex parses a hex quantity string, with or without 0x prefix.
// Odd-length digit strings are accepted ("0x1" is one).
func UInt256FromHex(s string) (UInt256, error) {
	digits := strings.TrimPrefix(s, "0x")
	if digits == "" {
		return UInt256{}, quillerr.WithDetails(quillerr.ErrValueOutOfRange, map[string]string{
			"reason": "empty hex quantity",
		})
	}
	if len(digits)%2 != 0 {
		digits = "0" + digits
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		return UInt256{}, quillerr.WithDetails(quillerr.ErrValueOutOfRange, map[string]string{
			"reason": "invalid hex quantity",
		})
	}
	return UInt256FromBytes(b)
}

// MustUInt256FromHex parses a hex quantity, panicking on error.
// Only use in initialization code with known-good values.
func MustUInt256FromHex(s string) UInt256 {
	u, err := UInt256FromHex(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Bytes returns the minimal big-endian representation: no leading zero bytes,
// and the value zero as an empty slice. This is the canonical form RLP
// requires for integers.
func (u UInt256) Bytes() []byte {
	return u.i.Bytes()
}

// Bytes32 returns the value left-padded to 32 bytes.
func (u UInt256) Bytes32() [32]byte {
	return u.i.Bytes32()
}

// Item projects the value into its RLP representation.
func (u UInt256) Item() rlp.Item {
	return rlp.BytesItem(u.Bytes())
}

// Big returns the value as a fresh big.Int.
func (u UInt256) Big() *big.Int {
	return u.i.ToBig()
}

// Uint64 converts to uint64, failing with ErrValueOutOfRange when the value
// does not fit.
func (u UInt256) Uint64() (uint64, error) {
	if !u.i.IsUint64() {
		return 0, quillerr.WithDetails(quillerr.ErrValueOutOfRange, map[string]string{
			"reason": "value exceeds 64 bits",
		})
	}
	return u.i.Uint64(), nil
}

// IsZero reports whether the value is zero.
func (u UInt256) IsZero() bool {
	return u.i.IsZero()
}

// Cmp compares two values, returning -1, 0 or 1.
func (u UInt256) Cmp(other UInt256) int {
	return u.i.Cmp(&other.i)
}

// String returns the decimal representation.
func (u UInt256) String() string {
	return u.i.Dec()
}

// Hex returns the minimal 0x-prefixed hex representation.
func (u UInt256) Hex() string {
	return u.i.Hex()
}

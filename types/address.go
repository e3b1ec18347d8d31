package types

import (
	"encoding/hex"
	"strings"

	"github.com/mrz1836/quill/crypto"
	quillerr "github.com/mrz1836/quill/pkg/errors"
)

// AddressLength is the expected length of an Ethereum address.
const AddressLength = 20

// Address represents a 20-byte Ethereum address, immutable once constructed.
type Address [AddressLength]byte

// BytesToAddress converts a byte slice to an Address.
// If the slice is shorter than 20 bytes, it is left-padded with zeros.
// If longer, only the last 20 bytes are used.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToAddress converts a hex string to an Address.
// The string may optionally start with "0x"; it must contain exactly 40 hex
// characters.
func HexToAddress(s string) (Address, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != AddressLength*2 {
		return Address{}, quillerr.WithDetails(quillerr.ErrInvalidAddress, map[string]string{
			"address": s,
		})
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, quillerr.WithDetails(quillerr.ErrInvalidAddress, map[string]string{
			"address": s,
		})
	}

	return BytesToAddress(b), nil
}

// MustHexToAddress converts a hex string to an Address, panicking on error.
// Only use in initialization code with known-good addresses.
func MustHexToAddress(s string) Address {
	addr, err := HexToAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// PublicKeyToAddress derives an Address from an uncompressed public key via
// hash-then-truncate. The derivation is deterministic and pure.
func PublicKeyToAddress(publicKey []byte) (Address, error) {
	b, err := crypto.PublicKeyToAddress(publicKey)
	if err != nil {
		return Address{}, err
	}
	return BytesToAddress(b), nil
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte {
	return a[:]
}

// Hex returns the address as a lowercase hex string with 0x prefix.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// String returns the EIP-55 checksummed hex representation.
func (a Address) String() string {
	return crypto.ToChecksumAddress(a.Hex())
}

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	for _, b := range a {
		if b != 0 {
			return false
		}
	}
	return true
}

package crypto

import (
	"encoding/hex"
	"strings"

	quillerr "github.com/mrz1836/quill/pkg/errors"
)

// AddressLength is the byte length of an Ethereum address.
const AddressLength = 20

// uncompressedPubKeyLength is 0x04 || X || Y.
const uncompressedPubKeyLength = 65

// PublicKeyToAddress derives the 20 address bytes from a public key: the low
// 20 bytes of the Keccak-256 hash of the X,Y coordinates. Accepts either the
// 65-byte uncompressed form (0x04 prefix) or the bare 64-byte coordinates.
func PublicKeyToAddress(publicKey []byte) ([]byte, error) {
	var coords []byte

	switch len(publicKey) {
	case uncompressedPubKeyLength:
		if publicKey[0] != 0x04 {
			return nil, quillerr.WithDetails(quillerr.ErrRecoveryFailed, map[string]string{
				"reason": "invalid uncompressed public key prefix",
			})
		}
		coords = publicKey[1:]
	case uncompressedPubKeyLength - 1:
		coords = publicKey
	default:
		return nil, quillerr.WithDetails(quillerr.ErrRecoveryFailed, map[string]string{
			"reason": "invalid public key length",
		})
	}

	hash := Keccak256(coords)
	return hash[HashLength-AddressLength:], nil
}

// DeriveAddress derives the 20 address bytes from a private key.
func DeriveAddress(privateKey []byte) ([]byte, error) {
	pub, err := DerivePublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	return PublicKeyToAddress(pub)
}

// IsValidAddress checks if the address is a valid Ethereum address format.
// This validates the format (40 hex chars with 0x prefix) but does not validate checksum.
func IsValidAddress(address string) bool {
	if len(address) != AddressLength*2+2 {
		return false
	}
	if !strings.HasPrefix(address, "0x") {
		return false
	}
	for _, c := range address[2:] {
		if !isHexChar(c) {
			return false
		}
	}
	return true
}

// ToChecksumAddress converts an Ethereum address to EIP-55 checksum format.
// If the input is invalid, it returns the original input unchanged.
func ToChecksumAddress(address string) string {
	if !IsValidAddress(address) {
		return address
	}

	// Remove 0x prefix and lowercase
	addr := strings.ToLower(address[2:])

	// Hash the lowercase address
	hash := hex.EncodeToString(Keccak256([]byte(addr)))

	// Build checksummed address
	result := make([]byte, 42)
	result[0] = '0'
	result[1] = 'x'

	for i := 0; i < 40; i++ {
		c := addr[i]
		// If the hash nibble is >= 8, uppercase the character
		hashNibble := hash[i]
		if hashNibble >= '8' && c >= 'a' && c <= 'f' {
			//nolint:gosec // Safe: i bounded by loop [0,40), result size is 42
			result[i+2] = c - 32 // Convert to uppercase
		} else {
			//nolint:gosec // Safe: i bounded by loop [0,40), result size is 42
			result[i+2] = c
		}
	}

	return string(result)
}

// ValidateChecksumAddress validates that an Ethereum address has correct EIP-55 checksum.
// All lowercase and all uppercase addresses are considered valid (non-checksummed).
// Mixed-case addresses must have the correct checksum.
func ValidateChecksumAddress(address string) error {
	if !IsValidAddress(address) {
		return quillerr.WithDetails(quillerr.ErrInvalidAddress, map[string]string{
			"address": address,
		})
	}

	// All lowercase or all uppercase is valid (non-checksummed)
	addrPart := address[2:]
	if addrPart == strings.ToLower(addrPart) || addrPart == strings.ToUpper(addrPart) {
		return nil
	}

	// For mixed case, verify checksum
	expected := ToChecksumAddress(address)
	if address != expected {
		return quillerr.WithDetails(quillerr.ErrInvalidAddress, map[string]string{
			"expected": expected,
			"actual":   address,
		})
	}
	return nil
}

// LeftPadBytes pads a byte slice with zeros on the left to the specified length.
func LeftPadBytes(b []byte, length int) []byte {
	if len(b) >= length {
		return b
	}
	result := make([]byte, length)
	copy(result[length-len(b):], b)
	return result
}

func isHexChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Package crypto provides the cryptographic primitives quill builds on:
// Keccak-256 hashing, recoverable deterministic ECDSA over secp256k1, address
// derivation, and secure in-memory key handling.
package crypto

import (
	"golang.org/x/crypto/sha3"
)

// HashLength is the byte length of a Keccak-256 digest.
const HashLength = 32

// Keccak256 computes the Keccak-256 hash of the input data.
// This is the hash function used throughout Ethereum.
func Keccak256(data ...[]byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	for _, b := range data {
		hasher.Write(b)
	}
	return hasher.Sum(nil)
}

// Keccak256Hash computes the Keccak-256 hash and returns it as a 32-byte array.
func Keccak256Hash(data ...[]byte) [HashLength]byte {
	var hash [HashLength]byte
	copy(hash[:], Keccak256(data...))
	return hash
}

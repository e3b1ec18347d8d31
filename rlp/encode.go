package rlp

// Encode encodes an item to its canonical RLP byte representation.
// Encoding is total: every item has exactly one valid encoding.
func Encode(item Item) []byte {
	if item.IsList() {
		return encodeList(item.List())
	}
	return encodeBytes(item.Bytes())
}

// encodeBytes encodes a byte string.
// - For a single byte in [0x00, 0x7f], the byte is its own RLP encoding.
// - For 0-55 bytes, prefix with (0x80 + length).
// - For >55 bytes, prefix with (0xb7 + length of length) followed by length.
func encodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return []byte{b[0]}
	}
	return concat(encodeLength(len(b), 0x80), b)
}

// encodeList encodes a list of items.
// - For 0-55 total payload bytes, prefix with (0xc0 + length).
// - For >55 bytes, prefix with (0xf7 + length of length) followed by length.
func encodeList(elems []Item) []byte {
	// Encode all elements first to know total size
	encoded := make([][]byte, len(elems))
	totalLen := 0
	for i, elem := range elems {
		encoded[i] = Encode(elem)
		totalLen += len(encoded[i])
	}

	payload := make([]byte, 0, totalLen)
	for _, e := range encoded {
		payload = append(payload, e...)
	}
	return concat(encodeLength(len(payload), 0xc0), payload)
}

// encodeLength encodes the length prefix for strings (offset=0x80) or lists (offset=0xc0).
func encodeLength(length int, offset byte) []byte {
	if length < 56 {
		return []byte{offset + byte(length)} //nolint:gosec // G115: length < 56, safe conversion
	}

	// For lengths >= 56, encode the length as big-endian bytes
	lenBytes := bigEndianBytes(uint64(length))
	return append([]byte{offset + 55 + byte(len(lenBytes))}, lenBytes...) //nolint:gosec // G115: len(lenBytes) <= 8 for any uint64
}

// bigEndianBytes converts a uint64 to minimal big-endian bytes (no leading zeros).
func bigEndianBytes(i uint64) []byte {
	if i == 0 {
		return nil
	}

	// Find the number of significant bytes
	n := 0
	for v := i; v > 0; v >>= 8 {
		n++
	}

	result := make([]byte, n)
	for j := n - 1; j >= 0; j-- {
		result[j] = byte(i)
		i >>= 8
	}
	return result
}

// concat concatenates byte slices.
func concat(slices ...[]byte) []byte {
	totalLen := 0
	for _, s := range slices {
		totalLen += len(s)
	}

	result := make([]byte, 0, totalLen)
	for _, s := range slices {
		result = append(result, s...)
	}
	return result
}

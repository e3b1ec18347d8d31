package rlp

import (
	quillerr "github.com/mrz1836/quill/pkg/errors"
)

// Long-form prefixes carry 1-8 length bytes.
const maxLengthBytes = 8

// Decode decodes the item at the start of b and returns it together with the
// number of bytes consumed. Trailing input beyond the top-level item is left to
// the caller. Returned byte strings alias the input; callers that mutate the
// input must copy first.
//
// Decoding is strict: any length prefix that is not minimally encoded, a
// single byte wrapped in an unnecessary prefix, or a declared length that does
// not match the available input is rejected with ErrMalformedEncoding. A
// non-canonical encoding is never normalized into the value it resembles.
func Decode(b []byte) (Item, int, error) {
	if len(b) == 0 {
		return Item{}, 0, quillerr.WithDetails(quillerr.ErrMalformedEncoding, map[string]string{
			"reason": "empty input",
		})
	}

	prefix := b[0]

	switch {
	case prefix < 0x80:
		// Single byte, its own encoding
		return BytesItem(b[:1]), 1, nil

	case prefix <= 0xb7:
		return decodeShortString(b, prefix)

	case prefix <= 0xbf:
		return decodeLongString(b, prefix)

	case prefix <= 0xf7:
		// Short list: payload length in the prefix
		length := int(prefix - 0xc0)
		payload, err := slicePayload(b[1:], length)
		if err != nil {
			return Item{}, 0, err
		}
		elems, err := decodeListPayload(payload)
		if err != nil {
			return Item{}, 0, err
		}
		return ListItem(elems...), 1 + length, nil

	default:
		return decodeLongList(b, prefix)
	}
}

// DecodeFull decodes b as a single item and rejects trailing bytes.
func DecodeFull(b []byte) (Item, error) {
	item, consumed, err := Decode(b)
	if err != nil {
		return Item{}, err
	}
	if consumed != len(b) {
		return Item{}, quillerr.WithDetails(quillerr.ErrMalformedEncoding, map[string]string{
			"reason": "trailing bytes after item",
		})
	}
	return item, nil
}

// decodeShortString handles prefixes 0x80-0xb7 (0-55 byte strings).
func decodeShortString(b []byte, prefix byte) (Item, int, error) {
	length := int(prefix - 0x80)
	payload, err := slicePayload(b[1:], length)
	if err != nil {
		return Item{}, 0, err
	}

	// A single byte below 0x80 must be encoded as itself, never prefixed
	if length == 1 && payload[0] < 0x80 {
		return Item{}, 0, quillerr.WithDetails(quillerr.ErrMalformedEncoding, map[string]string{
			"reason": "single byte below 0x80 must not be prefixed",
		})
	}

	return BytesItem(payload), 1 + length, nil
}

// decodeLongString handles prefixes 0xb8-0xbf (>55 byte strings).
func decodeLongString(b []byte, prefix byte) (Item, int, error) {
	lenOfLen := int(prefix - 0xb7)
	length, err := decodeLongLength(b[1:], lenOfLen)
	if err != nil {
		return Item{}, 0, err
	}

	payload, err := slicePayload(b[1+lenOfLen:], length)
	if err != nil {
		return Item{}, 0, err
	}
	return BytesItem(payload), 1 + lenOfLen + length, nil
}

// decodeLongList handles prefixes 0xf8-0xff (>55 byte list payloads).
func decodeLongList(b []byte, prefix byte) (Item, int, error) {
	lenOfLen := int(prefix - 0xf7)
	length, err := decodeLongLength(b[1:], lenOfLen)
	if err != nil {
		return Item{}, 0, err
	}

	payload, err := slicePayload(b[1+lenOfLen:], length)
	if err != nil {
		return Item{}, 0, err
	}
	elems, err := decodeListPayload(payload)
	if err != nil {
		return Item{}, 0, err
	}
	return ListItem(elems...), 1 + lenOfLen + length, nil
}

// decodeLongLength reads a big-endian length of lenOfLen bytes and enforces
// minimal encoding: no leading zero byte, and the long form only for
// lengths that do not fit the short form.
func decodeLongLength(b []byte, lenOfLen int) (int, error) {
	if lenOfLen > maxLengthBytes || len(b) < lenOfLen {
		return 0, quillerr.WithDetails(quillerr.ErrMalformedEncoding, map[string]string{
			"reason": "truncated length",
		})
	}
	if b[0] == 0 {
		return 0, quillerr.WithDetails(quillerr.ErrMalformedEncoding, map[string]string{
			"reason": "length has leading zero byte",
		})
	}

	var length uint64
	for i := 0; i < lenOfLen; i++ {
		length = length<<8 | uint64(b[i])
	}
	if length < 56 {
		return 0, quillerr.WithDetails(quillerr.ErrMalformedEncoding, map[string]string{
			"reason": "long form used for short length",
		})
	}
	const maxInt = uint64(^uint(0) >> 1)
	if length > maxInt {
		return 0, quillerr.WithDetails(quillerr.ErrMalformedEncoding, map[string]string{
			"reason": "declared length exceeds platform limits",
		})
	}
	return int(length), nil
}

// decodeListPayload decodes consecutive items until the payload is exactly
// consumed.
func decodeListPayload(payload []byte) ([]Item, error) {
	elems := []Item{}
	for len(payload) > 0 {
		elem, consumed, err := Decode(payload)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		payload = payload[consumed:]
	}
	return elems, nil
}

// slicePayload returns the first length bytes of b, failing if the declared
// length overruns the input.
func slicePayload(b []byte, length int) ([]byte, error) {
	if len(b) < length {
		return nil, quillerr.WithDetails(quillerr.ErrMalformedEncoding, map[string]string{
			"reason": "declared length exceeds input",
		})
	}
	return b[:length], nil
}

// Package rlp provides canonical RLP (Recursive Length Prefix) encoding and
// decoding for Ethereum data structures.
// See: https://ethereum.org/en/developers/docs/data-structures-and-encoding/rlp/
package rlp

import "bytes"

// Kind distinguishes the two RLP item shapes.
type Kind int

// Item kinds.
const (
	KindBytes Kind = iota
	KindList
)

// Item is the tagged intermediate representation the codec operates on: either
// a byte string or an ordered list of items. Typed values (integers, addresses,
// transaction fields) are projected into an Item before encoding and recovered
// from one after decoding.
type Item struct {
	kind Kind
	str  []byte
	list []Item
}

// BytesItem creates a byte-string item. A nil slice is the empty string.
func BytesItem(b []byte) Item {
	return Item{kind: KindBytes, str: b}
}

// ListItem creates a list item from the given elements, preserving order.
func ListItem(elems ...Item) Item {
	return Item{kind: KindList, list: elems}
}

// Kind returns the item's shape.
func (i Item) Kind() Kind {
	return i.kind
}

// IsList reports whether the item is a list.
func (i Item) IsList() bool {
	return i.kind == KindList
}

// Bytes returns the payload of a byte-string item, or nil for a list.
func (i Item) Bytes() []byte {
	if i.kind != KindBytes {
		return nil
	}
	return i.str
}

// List returns the elements of a list item, or nil for a byte string.
func (i Item) List() []Item {
	if i.kind != KindList {
		return nil
	}
	return i.list
}

// Len returns the byte length of a string item or the element count of a list.
func (i Item) Len() int {
	if i.kind == KindList {
		return len(i.list)
	}
	return len(i.str)
}

// Equal reports whether two items have the same shape and content.
// Empty and nil byte strings compare equal.
func (i Item) Equal(other Item) bool {
	if i.kind != other.kind {
		return false
	}
	if i.kind == KindBytes {
		return bytes.Equal(i.str, other.str)
	}
	if len(i.list) != len(other.list) {
		return false
	}
	for n := range i.list {
		if !i.list[n].Equal(other.list[n]) {
			return false
		}
	}
	return true
}

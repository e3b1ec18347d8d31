package types

import (
	"github.com/mrz1836/quill/crypto"
)

// ERC-20 transfer function selector: keccak256("transfer(address,uint256)")[0:4]
//
//nolint:gochecknoglobals // ERC-20 constant
var erc20TransferSelector = []byte{0xa9, 0x05, 0x9c, 0xbb}

// erc20TransferDataLength is selector + address word + amount word.
const erc20TransferDataLength = 4 + 32 + 32

// ERC20TransferData builds the call data for an ERC-20 transfer:
// transfer(address,uint256) = 0xa9059cbb with both arguments left-padded to
// 32-byte words. The transaction carrying it is sent to the token contract
// with a zero value.
func ERC20TransferData(to Address, amount UInt256) []byte {
	data := make([]byte, erc20TransferDataLength)
	copy(data[:4], erc20TransferSelector)

	// Pad address to 32 bytes (left-pad with zeros)
	copy(data[4:36], crypto.LeftPadBytes(to.Bytes(), 32))

	// Pad amount to 32 bytes (left-pad with zeros)
	word := amount.Bytes32()
	copy(data[36:68], word[:])

	return data
}

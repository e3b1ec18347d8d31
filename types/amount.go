package types

import (
	"math/big"
	"strings"

	quillerr "github.com/mrz1836/quill/pkg/errors"
)

// Denomination decimal places.
const (
	EtherDecimals = 18
	GweiDecimals  = 9
)

// ParseEther parses a decimal ether amount string into wei.
// For example, "1.5" returns 1500000000000000000. Fails with ErrInvalidAmount
// on malformed input and ErrValueOutOfRange when the result exceeds 256 bits.
func ParseEther(amount string) (UInt256, error) {
	return parseDecimalAmount(amount, EtherDecimals)
}

// ParseGwei parses a decimal gwei amount string into wei.
func ParseGwei(amount string) (UInt256, error) {
	return parseDecimalAmount(amount, GweiDecimals)
}

// GweiToWei converts a whole gwei amount to wei.
func GweiToWei(gwei uint64) UInt256 {
	wei := new(big.Int).SetUint64(gwei)
	wei.Mul(wei, big.NewInt(1_000_000_000))
	// A uint64 gwei amount cannot overflow 256 bits
	u, _ := UInt256FromBig(wei)
	return u
}

// FormatEther renders a wei amount as a decimal ether string with trailing
// zeros removed. For example, 1500000000000000000 wei returns "1.5".
func FormatEther(wei UInt256) string {
	return formatDecimalAmount(wei.Big(), EtherDecimals)
}

// parseDecimalAmount parses a non-negative decimal string scaled by the given
// decimal places.
//
//nolint:gocognit,gocyclo // Decimal parsing requires sequential validation steps
func parseDecimalAmount(amount string, decimalPlaces int) (UInt256, error) {
	if amount == "" {
		return UInt256{}, quillerr.ErrInvalidAmount
	}

	// Amounts are magnitudes, never negative
	if strings.HasPrefix(amount, "-") {
		return UInt256{}, quillerr.ErrInvalidAmount
	}

	// Split by decimal point
	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return UInt256{}, quillerr.ErrInvalidAmount
	}

	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if intPart == "" {
		intPart = "0"
	}
	for _, c := range intPart {
		if c < '0' || c > '9' {
			return UInt256{}, quillerr.ErrInvalidAmount
		}
	}
	intVal, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return UInt256{}, quillerr.ErrInvalidAmount
	}

	// Scale integer part
	multiplier := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimalPlaces)), nil)
	result := new(big.Int).Mul(intVal, multiplier)

	// Handle decimal part
	if decPart != "" {
		for _, c := range decPart {
			if c < '0' || c > '9' {
				return UInt256{}, quillerr.ErrInvalidAmount
			}
		}
		if len(decPart) > decimalPlaces {
			return UInt256{}, quillerr.WithDetails(quillerr.ErrInvalidAmount, map[string]string{
				"reason": "too many decimal places",
			})
		}

		for len(decPart) < decimalPlaces {
			decPart += "0"
		}

		decVal, ok := new(big.Int).SetString(decPart, 10)
		if !ok {
			return UInt256{}, quillerr.ErrInvalidAmount
		}
		result.Add(result, decVal)
	}

	return UInt256FromBig(result)
}

// formatDecimalAmount converts an amount to a human-readable string with the
// given decimal places. Trailing zeros after the decimal point are removed.
func formatDecimalAmount(amount *big.Int, decimalPlaces int) string {
	if amount == nil {
		return "0"
	}

	str := amount.String()

	// Pad with leading zeros if necessary
	for len(str) <= decimalPlaces {
		str = "0" + str
	}

	// Insert decimal point
	decimalPos := len(str) - decimalPlaces
	result := str[:decimalPos] + "." + str[decimalPos:]

	// Remove unnecessary trailing zeros
	for len(result) > 1 && result[len(result)-1] == '0' && result[len(result)-2] != '.' {
		result = result[:len(result)-1]
	}

	return result
}

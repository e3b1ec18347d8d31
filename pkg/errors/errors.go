// Package errors provides structured error handling for quill.
// It defines sentinel errors for every failure the library can surface
// and helpers for adding context and details to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// QuillError is the structured error type for quill.
type QuillError struct {
	Code    string            // Machine-readable error code
	Message string            // Human-readable message
	Details map[string]string // Additional context
	Cause   error             // Underlying error
}

func (e *QuillError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *QuillError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for QuillError.
func (e *QuillError) Is(target error) bool {
	var t *QuillError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	// ErrValueOutOfRange indicates a value exceeds the capacity of its type,
	// e.g. a big-endian magnitude wider than 256 bits.
	ErrValueOutOfRange = &QuillError{
		Code:    "VALUE_OUT_OF_RANGE",
		Message: "value out of range",
	}

	// ErrMalformedEncoding indicates RLP input that violates the canonical
	// encoding rules. Non-canonical input is always rejected, never normalized.
	ErrMalformedEncoding = &QuillError{
		Code:    "MALFORMED_ENCODING",
		Message: "malformed RLP encoding",
	}

	// ErrInvalidFeeOrdering indicates a dynamic-fee transaction whose priority
	// fee exceeds its fee cap.
	ErrInvalidFeeOrdering = &QuillError{
		Code:    "INVALID_FEE_ORDERING",
		Message: "max priority fee exceeds max fee",
	}

	// ErrInvalidKey indicates a signing key that is not a valid nonzero scalar
	// less than the secp256k1 curve order.
	ErrInvalidKey = &QuillError{
		Code:    "INVALID_KEY",
		Message: "invalid private key",
	}

	// ErrInvalidRecoveryID indicates a signature recovery identifier outside {0, 1}.
	ErrInvalidRecoveryID = &QuillError{
		Code:    "INVALID_RECOVERY_ID",
		Message: "invalid signature recovery id",
	}

	// ErrRecoveryFailed indicates a signature that does not recover to a valid
	// public key.
	ErrRecoveryFailed = &QuillError{
		Code:    "RECOVERY_FAILED",
		Message: "signature does not recover to a valid public key",
	}

	// ErrInvalidAddress indicates an address that is not exactly 20 bytes of hex.
	ErrInvalidAddress = &QuillError{
		Code:    "INVALID_ADDRESS",
		Message: "invalid address format",
	}

	// ErrInvalidAmount indicates a malformed decimal or hex amount string.
	ErrInvalidAmount = &QuillError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount format",
	}

	// ErrInvalidTransaction indicates transaction contents or wire bytes that do
	// not match the expected schema for their variant.
	ErrInvalidTransaction = &QuillError{
		Code:    "INVALID_TRANSACTION",
		Message: "invalid transaction",
	}

	// ErrInvalidSignature indicates a signature with out-of-range components.
	ErrInvalidSignature = &QuillError{
		Code:    "INVALID_SIGNATURE",
		Message: "invalid signature",
	}

	// ErrInvalidDigest indicates a signing digest that is not exactly 32 bytes.
	ErrInvalidDigest = &QuillError{
		Code:    "INVALID_DIGEST",
		Message: "digest must be 32 bytes",
	}
)

// New creates a new QuillError with the given code and message.
func New(code, message string) *QuillError {
	return &QuillError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var qe *QuillError
	if errors.As(err, &qe) {
		return &QuillError{
			Code:    qe.Code,
			Message: fmt.Sprintf("%s: %s", msg, qe.Message),
			Details: qe.Details,
			Cause:   err,
		}
	}

	return &QuillError{
		Code:    "GENERAL_ERROR",
		Message: msg,
		Cause:   err,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var qe *QuillError
	if errors.As(err, &qe) {
		return &QuillError{
			Code:    qe.Code,
			Message: qe.Message,
			Details: details,
			Cause:   qe.Cause,
		}
	}

	return &QuillError{
		Code:    "GENERAL_ERROR",
		Message: err.Error(),
		Details: details,
		Cause:   err,
	}
}

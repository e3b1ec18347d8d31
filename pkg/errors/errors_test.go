package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quillerr "github.com/mrz1836/quill/pkg/errors"
)

var (
	errInner = errors.New("inner")
	errPlain = errors.New("plain error")
)

func TestSentinelIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"range", quillerr.ErrValueOutOfRange, "VALUE_OUT_OF_RANGE"},
		{"malformed", quillerr.ErrMalformedEncoding, "MALFORMED_ENCODING"},
		{"fee ordering", quillerr.ErrInvalidFeeOrdering, "INVALID_FEE_ORDERING"},
		{"key", quillerr.ErrInvalidKey, "INVALID_KEY"},
		{"recovery id", quillerr.ErrInvalidRecoveryID, "INVALID_RECOVERY_ID"},
		{"recovery", quillerr.ErrRecoveryFailed, "RECOVERY_FAILED"},
		{"address", quillerr.ErrInvalidAddress, "INVALID_ADDRESS"},
		{"amount", quillerr.ErrInvalidAmount, "INVALID_AMOUNT"},
		{"transaction", quillerr.ErrInvalidTransaction, "INVALID_TRANSACTION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var qe *quillerr.QuillError
			require.ErrorAs(t, tt.err, &qe)
			assert.Equal(t, tt.code, qe.Code)
		})
	}
}

func TestWrapPreservesSentinel(t *testing.T) {
	t.Parallel()

	wrapped := quillerr.Wrap(quillerr.ErrMalformedEncoding, "decoding item %d", 3)
	require.Error(t, wrapped)

	assert.ErrorIs(t, wrapped, quillerr.ErrMalformedEncoding)
	assert.Contains(t, wrapped.Error(), "decoding item 3")
}

func TestWrapNil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, quillerr.Wrap(nil, "ignored"))
	assert.NoError(t, quillerr.WithDetails(nil, map[string]string{"k": "v"}))
}

func TestWrapPlainError(t *testing.T) {
	t.Parallel()

	wrapped := quillerr.Wrap(errPlain, "context")
	require.Error(t, wrapped)

	var qe *quillerr.QuillError
	require.ErrorAs(t, wrapped, &qe)
	assert.Equal(t, "GENERAL_ERROR", qe.Code)
	assert.ErrorIs(t, wrapped, errPlain)
}

func TestWithDetails(t *testing.T) {
	t.Parallel()

	err := quillerr.WithDetails(quillerr.ErrValueOutOfRange, map[string]string{
		"field": "nonce",
		"bytes": "33",
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, quillerr.ErrValueOutOfRange)
	// Details are rendered sorted by key
	assert.Equal(t, "value out of range (bytes: 33) (field: nonce)", err.Error())
}

func TestErrorMessageWithCause(t *testing.T) {
	t.Parallel()

	err := quillerr.Wrap(errInner, "outer")
	assert.Equal(t, "outer: inner", err.Error())
}

func TestIsMatchesByCode(t *testing.T) {
	t.Parallel()

	custom := quillerr.New("INVALID_KEY", "different message, same code")
	assert.ErrorIs(t, custom, quillerr.ErrInvalidKey)
	assert.NotErrorIs(t, custom, quillerr.ErrRecoveryFailed)
}

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quillerr "github.com/mrz1836/quill/pkg/errors"
	"github.com/mrz1836/quill/types"
)

func TestParseEther(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantWei string // decimal
		wantErr bool
	}{
		{"one ether", "1", "1000000000000000000", false},
		{"one point five", "1.5", "1500000000000000000", false},
		{"fractional only", "0.000000001", "1000000000", false},
		{"leading dot", ".5", "500000000000000000", false},
		{"zero", "0", "0", false},
		{"full precision", "0.000000000000000001", "1", false},
		{"too many decimals", "0.0000000000000000001", "", true},
		{"negative", "-1", "", true},
		{"empty", "", "", true},
		{"not a number", "one", "", true},
		{"double dot", "1.2.3", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := types.ParseEther(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, quillerr.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantWei, got.String())
		})
	}
}

func TestParseGwei(t *testing.T) {
	t.Parallel()

	got, err := types.ParseGwei("20")
	require.NoError(t, err)
	assert.Equal(t, "20000000000", got.String())

	got, err = types.ParseGwei("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1500000000", got.String())

	// Sub-wei precision is an error, never silently truncated
	_, err = types.ParseGwei("0.0000000001")
	require.Error(t, err)
	assert.ErrorIs(t, err, quillerr.ErrInvalidAmount)
}

func TestGweiToWei(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "20000000000", types.GweiToWei(20).String())
	assert.Equal(t, "0", types.GweiToWei(0).String())
}

func TestFormatEther(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		wei  string // hex
		want string
	}{
		{"one ether", "0xde0b6b3a7640000", "1.0"},
		{"one point five", "0x14d1120d7b160000", "1.5"},
		{"one wei", "0x1", "0.000000000000000001"},
		{"zero", "0x0", "0.0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, types.FormatEther(types.MustUInt256FromHex(tc.wei)))
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"1.5", "0.25", "1000.000000000000000001"} {
		parsed, err := types.ParseEther(s)
		require.NoError(t, err)
		assert.Equal(t, s, types.FormatEther(parsed))
	}
}

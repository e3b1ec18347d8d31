package signer_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/mrz1836/quill/signer"
)

// FuzzParseSignedTransaction checks the parser never panics and that anything
// it accepts re-encodes to its exact input.
func FuzzParseSignedTransaction(f *testing.F) {
	seeds := []string{
		eip155SignedTx,
		"f85f800182520894353535353535353535353535353535353535353580801ca081191cc4600d063004fbd43197cabbbe0c505bd86ae75a4f56e68765a1d6ab49a05dc0da8cf05a65efea722a53d2e0c3a4eea4f5b010eb7cf2a4d657c50d470d10",
		"02f8730109843b9aca008504a817c800825208943535353535353535353535353535353535353535880de0b6b3a764000080c080a04e87ced8b47d801c979c6baa52bbd78b42c9db2515c9d1f473e06f65d49aaa90a02357671517c59544ebd95012d1988c102292eb570cc840ac9af72bb4c52e5edd",
		"c0",
		"02",
		"",
	}
	for _, seed := range seeds {
		b, err := hex.DecodeString(seed)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(b)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		st, err := signer.ParseSignedTransaction(data)
		if err != nil {
			return
		}
		if !bytes.Equal(data, st.WireBytes()) {
			t.Errorf("accepted input does not round-trip:\n in: %x\nout: %x", data, st.WireBytes())
		}
	})
}

package builders

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinaryToText(t *testing.T) {
	testCases := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"utf8 text", []byte("héllo"), "héllo"},
		{"empty", []byte{}, ""},
		{"short binary", []byte{0xde, 0xad, 0xbe, 0xef}, "0xdeadbeef"},
		{"invalid utf8 byte", []byte{0xff}, "0xff"},
		{"exactly at limit", bytes.Repeat([]byte{0xff}, 100), "0x" + strings.Repeat("ff", 100)},
		{"over limit", bytes.Repeat([]byte{0xff}, 101), "<binary: 101 bytes>"},
		{"long text stays text", []byte(strings.Repeat("a", 500)), strings.Repeat("a", 500)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, BinaryToText(tc.input))
		})
	}
}

func TestBinaryToText_HexLength(t *testing.T) {
	r := require.New(t)

	for n := 1; n <= binaryHexLimit; n++ {
		b := bytes.Repeat([]byte{0x80}, n)
		out := BinaryToText(b)
		r.True(strings.HasPrefix(out, "0x"))
		r.Len(out, 2+2*n)
		r.Equal(strings.ToLower(out), out)
	}
}

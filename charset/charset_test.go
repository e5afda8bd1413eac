package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want Encoding
	}{
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'a'}, UTF8Sig},
		{"utf32 be bom", []byte{0x00, 0x00, 0xFE, 0xFF}, UTF32},
		{"utf32 le bom", []byte{0xFF, 0xFE, 0x00, 0x00}, UTF32},
		{"utf16 be bom", []byte{0xFE, 0xFF, 'a', 0}, UTF16},
		{"utf16 le bom", []byte{0xFF, 0xFE, 'a', 0}, UTF16},
		{"utf32 be no bom", []byte{0x00, 0x00, 0x00, 'a'}, UTF32BE},
		{"utf16 be no bom", []byte{0x00, 'a', 0x00, 'b'}, UTF16BE},
		{"utf32 le no bom", []byte{'a', 0x00, 0x00, 0x00}, UTF32LE},
		{"utf16 le no bom", []byte{'a', 0x00, 'b', 0x00}, UTF16LE},
		{"plain ascii", []byte("hello"), UTF8},
		{"short utf16 be", []byte{0x00, 'a'}, UTF16BE},
		{"short utf16 le", []byte{'a', 0x00}, UTF16LE},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Detect(c.in))
		})
	}
}

func TestAutoDecodeUTF8Sig(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hi")...)
	got, err := AutoDecode(in)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestAutoDecodeUTF16LEBom(t *testing.T) {
	// "hi" little-endian with BOM
	in := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	got, err := AutoDecode(in)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestAutoDecodeUTF16LoneSurrogatePreserved(t *testing.T) {
	// A lone high surrogate 0xD800 with no following low surrogate,
	// little-endian, no BOM but a leading ASCII byte to steer detection.
	in := []byte{'a', 0x00, 0x00, 0xD8}
	got, err := AutoDecode(in)
	require.NoError(t, err)

	r, size := DecodeRune(got[1:])
	assert.Equal(t, 3, size)
	assert.Equal(t, rune(0xD800), r)
}

func TestAppendRuneAndDecodeRuneRoundTripSurrogate(t *testing.T) {
	var b []byte
	b = AppendRune(b, 0xD83D) // high surrogate half of an emoji pair, left unpaired
	b = AppendRune(b, 'x')

	r, size := DecodeRune(string(b))
	assert.Equal(t, rune(0xD83D), r)
	assert.Equal(t, 3, size)

	r2, size2 := DecodeRune(string(b)[size:])
	assert.Equal(t, 'x', r2)
	assert.Equal(t, 1, size2)
}

func TestAppendRuneOrdinaryASCII(t *testing.T) {
	b := AppendRune(nil, 'A')
	assert.Equal(t, []byte{'A'}, b)
}

func TestDecodeRuneFallsBackToStandardUTF8(t *testing.T) {
	r, size := DecodeRune("世")
	assert.Equal(t, '世', r)
	assert.Equal(t, 3, size)
}

package encoding_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailfield/message/header/encoding"
)

// Εν αρχη ητο ο Λογος, και ο Λογος ητο παρα τω Θεω, και Θεος ητο ο Λογος.

var greekText = []byte{
	0xc5, 0xed, 0x20, 0xe1, 0xf1, 0xf7, 0xe7, 0x20, 0xe7, 0xf4, 0xef, 0x20,
	0xef, 0x20, 0xcb, 0xef, 0xe3, 0xef, 0xf2, 0x2c, 0x20, 0xea, 0xe1, 0xe9,
	0x20, 0xef, 0x20, 0xcb, 0xef, 0xe3, 0xef, 0xf2, 0x20, 0xe7, 0xf4, 0xef,
	0x20, 0xf0, 0xe1, 0xf1, 0xe1, 0x20, 0xf4, 0xf9, 0x20, 0xc8, 0xe5, 0xf9,
	0x2c, 0x20, 0xea, 0xe1, 0xe9, 0x20, 0xc8, 0xe5, 0xef, 0xf2, 0x20, 0xe7,
	0xf4, 0xef, 0x20, 0xef, 0x20, 0xcb, 0xef, 0xe3, 0xef, 0xf2, 0x2e,
}

const unicodeText = "Εν αρχη ητο ο Λογος, και ο Λογος ητο παρα τω Θεω, και Θεος ητο ο Λογος."

func TestCharsetEncoder(t *testing.T) {
	t.Parallel()

	enc, err := encoding.CharsetEncoder("greek", unicodeText)
	assert.NoError(t, err)
	assert.Equal(t, greekText, enc)

	// unicode to unicode encoding is supported, but not very exciting
	enc, err = encoding.CharsetEncoder("UTF-8", unicodeText)
	assert.NoError(t, err)
	assert.Equal(t, []byte(unicodeText), enc)

	_, err = encoding.CharsetEncoder("iso-8859-1", unicodeText)
	assert.Error(t, err)

	_, err = encoding.CharsetEncoder("x-klingon", unicodeText)
	assert.ErrorIs(t, err, encoding.ErrUnsupportedCharset)
}

func TestCharsetDecoder(t *testing.T) {
	t.Parallel()

	dec, err := encoding.CharsetDecoder("greek", greekText)
	assert.NoError(t, err)
	assert.Equal(t, unicodeText, dec)

	dec, err = encoding.CharsetDecoder("ISO-8859-1", []byte{0x4d, 0xfc, 0x6c, 0x6c, 0x65, 0x72})
	assert.NoError(t, err)
	assert.Equal(t, "Müller", dec)

	_, err = encoding.CharsetDecoder("x-klingon", greekText)
	assert.ErrorIs(t, err, encoding.ErrUnsupportedCharset)
}

func TestCharsetReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		charset string
		in      string
		out     string
	}{
		{"windows-1252", "\x80 5", "€ 5"},
		{"iso-8859-15", "\xa4", "€"},
		{"utf-8", "ü", "ü"},
		{"greek", string(greekText), unicodeText},
	}

	for _, test := range tests {
		r, err := encoding.CharsetReader(test.charset, strings.NewReader(test.in))
		require.NoError(t, err, test.charset)

		b, err := io.ReadAll(r)
		assert.NoError(t, err, test.charset)
		assert.Equal(t, test.out, string(b), test.charset)
	}

	_, err := encoding.CharsetReader("x-klingon", strings.NewReader(""))
	assert.ErrorIs(t, err, encoding.ErrUnsupportedCharset)
}

func TestIsUTF8(t *testing.T) {
	t.Parallel()

	assert.True(t, encoding.IsUTF8(""))
	assert.True(t, encoding.IsUTF8("UTF-8"))
	assert.True(t, encoding.IsUTF8("utf8"))
	assert.False(t, encoding.IsUTF8("iso-8859-1"))
}

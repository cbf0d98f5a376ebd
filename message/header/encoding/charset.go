// Package encoding converts header text between UTF-8 and the character sets
// named in RFC 2047 encoded-words. Lookups go through
// golang.org/x/text/encoding/ianaindex first, then the WHATWG names in
// htmlindex, so nearly any charset seen in the wild can be read or written.
//
// This makes compiled binaries considerably larger.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message/charset"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

func init() {
	// common in mail, but spelled in ways the reader table may not know
	charset.RegisterEncoding("windows-1252", charmap.Windows1252)
	charset.RegisterEncoding("iso-8859-1", charmap.ISO8859_1)
	charset.RegisterEncoding("iso-8859-15", charmap.ISO8859_15)
}

// ErrUnsupportedCharset is returned when no encoding is known for a charset
// name.
var ErrUnsupportedCharset = errors.New("unsupported charset")

// IsUTF8 returns true for the names that need no conversion at all.
func IsUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// Lookup returns the encoding for the named charset.
func Lookup(name string) (xencoding.Encoding, error) {
	name = strings.TrimSpace(name)

	e, err := ianaindex.MIME.Encoding(name)
	if err == nil && e != nil {
		return e, nil
	}

	e, err = htmlindex.Get(name)
	if err == nil && e != nil {
		return e, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, name)
}

// CharsetEncoder converts s from UTF-8 into the bytes of the named charset. It
// fails if any character of s cannot be represented in that charset.
func CharsetEncoder(name, s string) ([]byte, error) {
	if IsUTF8(name) {
		return []byte(s), nil
	}

	e, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	es, err := e.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("encode as %s: %w", name, err)
	}

	return []byte(es), nil
}

// CharsetDecoder converts b from the named charset into UTF-8.
func CharsetDecoder(name string, b []byte) (string, error) {
	if IsUTF8(name) {
		return string(b), nil
	}

	e, err := Lookup(name)
	if err != nil {
		return "", err
	}

	db, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode from %s: %w", name, err)
	}

	return string(db), nil
}

// CharsetReader is suitable for mime.WordDecoder.CharsetReader. It prefers
// the charset table of github.com/emersion/go-message/charset and falls back
// to Lookup for names that table does not carry.
func CharsetReader(name string, input io.Reader) (io.Reader, error) {
	if r, err := charset.Reader(name, input); err == nil {
		return r, nil
	}

	e, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	return e.NewDecoder().Reader(input), nil
}

package field

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/zostay/go-mailfield/message/header/encoding"
)

// DefaultCharset is the charset written into encoded-words when the caller
// does not name one.
const DefaultCharset = "UTF-8"

// MaxWordLength is the longest encoded-word RFC 2047 permits.
const MaxWordLength = 75

// ErrMalformedWord is returned by DecodeWord when the token is not a valid
// encoded-word or its payload cannot be decoded.
var ErrMalformedWord = errors.New("malformed encoded-word")

var wordDecoder = &mime.WordDecoder{
	CharsetReader: encoding.CharsetReader,
}

// IsASCII returns true if every byte of s is 7-bit.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsEncodedWord returns true if s has the shape =?charset?enc?payload?=. It
// does not check that the payload decodes.
func IsEncodedWord(s string) bool {
	return len(s) >= 8 &&
		strings.HasPrefix(s, "=?") &&
		strings.HasSuffix(s, "?=") &&
		strings.Count(s, "?") == 4
}

// wordCharset returns the upper-cased charset label and the bytes of text in
// that charset. If text cannot be represented in the charset, it falls back to
// UTF-8.
func wordCharset(text, charset string) (string, []byte) {
	cs := strings.ToUpper(strings.TrimSpace(charset))
	if cs == "" {
		cs = DefaultCharset
	}

	b, err := encoding.CharsetEncoder(cs, text)
	if err != nil {
		return DefaultCharset, []byte(text)
	}

	return cs, b
}

// EncodeWord returns text unchanged if it is pure ASCII. Otherwise, it
// returns a single B-encoded word holding the bytes of text in the given
// charset. The base64 is computed over the encoded bytes, so characters outside
// the basic multilingual plane are handled like any other.
func EncodeWord(text, charset string) string {
	if IsASCII(text) {
		return text
	}

	cs, b := wordCharset(text, charset)
	return "=?" + cs + "?B?" + base64.StdEncoding.EncodeToString(b) + "?="
}

// charsetBytes returns s in the charset cs, which wordCharset has already
// shown can represent it.
func charsetBytes(cs, s string) []byte {
	if encoding.IsUTF8(cs) {
		return []byte(s)
	}
	b, err := encoding.CharsetEncoder(cs, s)
	if err != nil {
		return []byte(s)
	}
	return b
}

// EncodeWords works like EncodeWord, but cuts text at rune boundaries into as
// many B-encoded words as it takes to keep each one within MaxWordLength. All
// words use the same charset. Pure ASCII text is returned as a single element.
func EncodeWords(text, charset string) []string {
	if IsASCII(text) {
		return []string{text}
	}

	cs, _ := wordCharset(text, charset)
	prefix := "=?" + cs + "?B?"
	fits := func(seg string) bool {
		n := base64.StdEncoding.EncodedLen(len(charsetBytes(cs, seg)))
		return len(prefix)+n+len("?=") <= MaxWordLength
	}
	word := func(seg string) string {
		return prefix + base64.StdEncoding.EncodeToString(charsetBytes(cs, seg)) + "?="
	}

	var words []string
	start, end := 0, 0
	for i, r := range text {
		next := i + utf8.RuneLen(r)
		if end > start && !fits(text[start:next]) {
			words = append(words, word(text[start:end]))
			start = end
		}
		end = next
	}
	if end > start {
		words = append(words, word(text[start:end]))
	}

	return words
}

// EncodeWordQ works like EncodeWord, but uses the Q encoding. Long input may be
// split into several encoded-words separated by spaces.
func EncodeWordQ(text, charset string) string {
	if IsASCII(text) {
		return text
	}

	cs, b := wordCharset(text, charset)
	return mime.QEncoding.Encode(cs, string(b))
}

// DecodeWord decodes a single encoded-word of either the B or Q form. On
// failure, the token is returned unchanged along with an error wrapping
// ErrMalformedWord.
func DecodeWord(word string) (string, error) {
	s, err := wordDecoder.Decode(word)
	if err != nil {
		return word, fmt.Errorf("%w: %v", ErrMalformedWord, err)
	}
	return s, nil
}

// Decode transforms a single header field body and looks for MIME word encoded
// field values. When they are found, these are decoded into native unicode.
// Malformed words are left in place.
func Decode(body string) (string, error) {
	if !strings.Contains(body, "=?") {
		return body, nil
	}

	s, err := wordDecoder.DecodeHeader(body)
	if err != nil {
		return body, err
	}
	return s, nil
}

// segment is a run of either whitespace or non-whitespace text.
type segment struct {
	text  string
	space bool
}

// segments splits s into alternating runs of whitespace and words.
func segments(s string) []segment {
	var segs []segment
	for len(s) > 0 {
		sp := isFWS(s[0])
		n := 1
		for n < len(s) && isFWS(s[n]) == sp {
			n++
		}
		segs = append(segs, segment{s[:n], sp})
		s = s[n:]
	}
	return segs
}

// EncodeText replaces each run of words holding non-ASCII text with
// encoded-words, split so that none is longer than MaxWordLength. ASCII
// words and the whitespace around a run are kept exactly as they are; the
// whitespace inside a run is carried in the encoded text.
func EncodeText(s, charset string) string {
	if IsASCII(s) {
		return s
	}

	segs := segments(s)

	var b strings.Builder
	for i := 0; i < len(segs); {
		if segs[i].space || IsASCII(segs[i].text) {
			b.WriteString(segs[i].text)
			i++
			continue
		}

		j := i + 1
		for j+1 < len(segs) && !IsASCII(segs[j+1].text) {
			j += 2
		}

		var run strings.Builder
		for _, sg := range segs[i:j] {
			run.WriteString(sg.text)
		}
		b.WriteString(strings.Join(EncodeWords(run.String(), charset), " "))
		i = j
	}

	return b.String()
}

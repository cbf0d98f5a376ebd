// Package scanner splits header field bodies into the lexical tokens shared by
// every structured header grammar: atoms, quoted-strings, comments, and the
// delimiters that separate them. Commas and semicolons that appear inside a
// quoted-string or a comment are content, never delimiters, which is what lets
// the address, date, and trace parsers agree on where a value really ends.
//
// The scanner never fails. An unterminated quoted-string or comment extends to
// the end of the input.
package scanner

import (
	"bufio"
	"strings"
)

// Kind identifies the lexical class of a Token.
type Kind int

// The token kinds produced by Tokenize.
const (
	Atom         Kind = iota // run of characters that are not specials or space
	QuotedString             // "..." including the quotes
	Comment                  // (...) including the parens, may nest
	Delimiter                // one of , ; : < > @
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case Atom:
		return "atom"
	case QuotedString:
		return "quoted-string"
	case Comment:
		return "comment"
	case Delimiter:
		return "delimiter"
	}
	return "unknown"
}

// Token is a classified span of the scanned input.
type Token struct {
	Kind Kind
	Text string // the raw text of the token, quotes and parens included

	// Start and End are byte offsets of Text in the input.
	Start, End int

	// SpaceBefore is true when whitespace preceded the token.
	SpaceBefore bool
}

// Is returns true if the token is the given delimiter.
func (t Token) Is(delim byte) bool {
	return t.Kind == Delimiter && t.Text[0] == delim
}

// Value returns the content of the token. For quoted-strings and comments the
// surrounding quotes or parens are removed and backslash escapes are resolved.
// Nested comments keep their inner parens. Atoms and delimiters are returned
// as-is.
func (t Token) Value() string {
	var closed bool
	switch t.Kind {
	case QuotedString:
		closed = scanQuoted([]byte(t.Text)) == len(t.Text)
	case Comment:
		closed = scanComment([]byte(t.Text)) == len(t.Text)
	default:
		return t.Text
	}

	s := t.Text[1:]
	if closed {
		s = s[:len(s)-1]
	}
	return unescape(s)
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// IsDelimiter returns true for the characters emitted as Delimiter tokens.
func IsDelimiter(c byte) bool {
	switch c {
	case ',', ';', ':', '<', '>', '@':
		return true
	}
	return false
}

// IsSpace returns true for folding whitespace characters.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// tokenizer holds the position bookkeeping for split.
type tokenizer struct {
	off   int  // offset of data[0] in the input
	space bool // whitespace was skipped since the last token
	last  Token
}

// split is a bufio.SplitFunc that skips whitespace by returning an advance
// with no token. It is meant to be wrapped in MakeSplitFuncExitByAdvance.
func (tz *tokenizer) split(data []byte, atEOF bool) (int, []byte, error) {
	if len(data) == 0 {
		return 0, nil, nil
	}

	if IsSpace(data[0]) {
		n := 1
		for n < len(data) && IsSpace(data[n]) {
			n++
		}
		tz.off += n
		tz.space = true
		return n, nil, nil
	}

	var (
		kind Kind
		end  int
	)
	switch c := data[0]; {
	case IsDelimiter(c):
		kind, end = Delimiter, 1
	case c == '"':
		kind, end = QuotedString, scanQuoted(data)
	case c == '(':
		kind, end = Comment, scanComment(data)
	default:
		kind, end = Atom, scanAtom(data)
	}

	if end < 0 {
		if !atEOF {
			return 0, nil, nil
		}
		end = len(data)
	}

	tz.last = Token{
		Kind:        kind,
		Start:       tz.off,
		End:         tz.off + end,
		SpaceBefore: tz.space,
	}
	tz.off += end
	tz.space = false

	return end, data[:end], nil
}

// scanQuoted returns the length of the quoted-string at the front of data or
// -1 if the closing quote has not been seen.
func scanQuoted(data []byte) int {
	for i := 1; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return -1
}

// scanComment returns the length of the (possibly nested) comment at the front
// of data or -1 if it is not closed yet.
func scanComment(data []byte) int {
	depth := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// scanAtom returns the length of the atom at the front of data or -1 if the
// atom runs to the end of data.
func scanAtom(data []byte) int {
	for i, c := range data {
		if IsSpace(c) || IsDelimiter(c) || c == '"' || c == '(' {
			return i
		}
	}
	return -1
}

// Tokenize scans s and returns its tokens in order.
func Tokenize(s string) []Token {
	tz := &tokenizer{}

	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, len(s)+1), len(s)+1)
	sc.Split(MakeSplitFuncExitByAdvance(tz.split))

	toks := make([]Token, 0, len(s)/4+1)
	for sc.Scan() {
		t := tz.last
		t.Text = sc.Text()
		toks = append(toks, t)
	}

	// The whole input fits in the buffer, so the scanner cannot fail with
	// bufio.ErrTooLong and split never returns an error.
	return toks
}

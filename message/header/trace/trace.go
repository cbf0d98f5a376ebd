// Package trace parses the value of a Received field into the free-text trace
// information and the date-time stamped after its last semicolon.
package trace

import (
	"strings"

	"github.com/zostay/go-mailfield/internal/scanner"
	"github.com/zostay/go-mailfield/message/header/datetime"
)

// Info is a parsed trace value.
type Info struct {
	Info string
	Date datetime.DateTime

	// RawDate is the trimmed text after the semicolon, kept so an
	// unparseable date survives re-rendering.
	RawDate string
}

// Parse splits s at its last semicolon that is not inside a comment or
// quoted-string. The text before it is the trimmed info and the text after it
// is parsed as a date. Without such a semicolon, all of s is info and the date
// is invalid.
func Parse(s string) Info {
	toks := scanner.Tokenize(s)
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Is(';') {
			raw := s[toks[i].End:]
			return Info{
				Info:    strings.TrimSpace(s[:toks[i].Start]),
				Date:    datetime.Parse(raw),
				RawDate: strings.TrimSpace(raw),
			}
		}
	}

	return Info{Info: strings.TrimSpace(s)}
}

// String renders "info; date" with the date in wire format. An invalid date
// is rendered from RawDate as it was found, and the semicolon is left off when
// there is no date text at all.
func (i Info) String() string {
	date := i.RawDate
	if i.Date.Valid {
		date = i.Date.Format()
	}
	if date == "" {
		return i.Info
	}
	if i.Info == "" {
		return "; " + date
	}
	return i.Info + "; " + date
}

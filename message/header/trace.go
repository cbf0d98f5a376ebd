package header

import (
	"strings"

	"github.com/zostay/go-mailfield/message/header/datetime"
	"github.com/zostay/go-mailfield/message/header/trace"
)

// TraceField holds a Received line: free-form trace information followed by
// the date it was stamped.
type TraceField struct {
	base
	info cell[trace.Info]
}

var _ Field = (*TraceField)(nil)

func (f *TraceField) parse() trace.Info {
	ti := trace.Parse(f.raw)
	if !ti.Date.Valid && strings.Contains(f.raw, ";") {
		f.reg.logger.Debug("trace date could not be parsed",
			"field", f.name,
			"text", f.raw)
	}
	return ti
}

// Parse parses the raw body if that has not happened yet.
func (f *TraceField) Parse() { f.Info() }

// Info returns the parsed trace value.
func (f *TraceField) Info() trace.Info {
	return f.info.get(f.parse)
}

// DateTime returns the date after the last semicolon.
func (f *TraceField) DateTime() datetime.DateTime {
	return f.Info().Date
}

// FormattedDate returns the date in wire format or "" if it is invalid.
func (f *TraceField) FormattedDate() string {
	return f.DateTime().Format()
}

// Value returns the raw body.
func (f *TraceField) Value() string { return f.raw }

// Decoded returns the info and the normalized date. A date that could not be
// parsed is kept as written.
func (f *TraceField) Decoded() string {
	return f.Info().String()
}

// Encoded returns the folded field line.
func (f *TraceField) Encoded() string {
	return f.foldText(f.Decoded)
}

package header

import (
	"time"

	"github.com/zostay/go-mailfield/message/header/datetime"
)

// DateField holds a single date-time, as found in Date and Resent-Date.
type DateField struct {
	base
	date cell[datetime.DateTime]
}

var _ Field = (*DateField)(nil)

func (f *DateField) parse() datetime.DateTime {
	d := datetime.Parse(f.raw)
	if !d.Valid {
		f.reg.logger.Debug("date could not be parsed",
			"field", f.name,
			"text", f.raw)
	}
	return d
}

// Parse parses the raw body if that has not happened yet.
func (f *DateField) Parse() { f.DateTime() }

// DateTime returns the parsed date. It is invalid when the body could not be
// parsed.
func (f *DateField) DateTime() datetime.DateTime {
	return f.date.get(f.parse)
}

// FormattedDate returns the date in wire format or "" if it is invalid.
func (f *DateField) FormattedDate() string {
	return f.DateTime().Format()
}

// Value returns the formatted date, or the raw body when it could not be
// parsed.
func (f *DateField) Value() string {
	if d := f.DateTime(); d.Valid {
		return d.Format()
	}
	return f.raw
}

// Decoded is the same as Value.
func (f *DateField) Decoded() string { return f.Value() }

// Encoded returns the folded field line.
func (f *DateField) Encoded() string {
	return f.foldText(f.Value)
}

// SetDate replaces the date.
func (f *DateField) SetDate(t time.Time) {
	d := datetime.From(t)
	f.date.set(d)
	f.raw = d.Format()
	f.encoded.invalidate()
}

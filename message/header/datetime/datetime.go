// Package datetime parses and formats the date-time values of RFC 5322 date
// and trace fields.
//
// A date that cannot be understood is not an error. It is simply an invalid
// DateTime, which formats as the empty string.
package datetime

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/zostay/go-mailfield/internal/scanner"
)

// Format is the wire format of a date-time.
const Format = time.RFC1123Z

// DateTime is an instant with the UTC offset it was written in. The zero
// value is invalid.
type DateTime struct {
	Time  time.Time
	Valid bool
}

// From wraps t as a valid DateTime.
func From(t time.Time) DateTime {
	return DateTime{Time: t, Valid: true}
}

// Now returns the current instant to the second.
func Now() DateTime {
	return From(time.Now().Round(0).Truncate(time.Second))
}

// Format renders the value as "Mon, 02 Jan 2006 15:04:05 -0700", or returns ""
// when the value is invalid.
func (d DateTime) Format() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(Format)
}

// String is the same as Format.
func (d DateTime) String() string {
	return d.Format()
}

// OffsetMinutes returns the UTC offset of the value in minutes.
func (d DateTime) OffsetMinutes() int {
	_, off := d.Time.Zone()
	return off / 60
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdays = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

// zones holds the named zones of RFC 5322 in hours east of UTC.
var zones = map[string]int{
	"ut": 0, "gmt": 0, "z": 0,
	"est": -5, "edt": -4,
	"cst": -6, "cdt": -5,
	"mst": -7, "mdt": -6,
	"pst": -8, "pdt": -7,
}

// fields holds the pieces of a date-time before range checks.
type fields struct {
	year, month, day     int
	hour, minute, second int
	zoneHours, zoneMins  int // signed the same way
}

// Parse reads a date-time of the form
//
//	[dow ","] day month year hh:mm[:ss] (+hhmm | -hhmm | zone)
//
// Comments are ignored. If s does not have that shape at all, but names a
// month or holds a clock time, Parse falls back to the lenient parser of
// github.com/araddon/dateparse. Bare numbers, such as a year or a unix
// timestamp, are never handed to it. A value with the right shape but an
// out-of-range part, such as hour 25, is invalid and is not retried.
func Parse(s string) DateTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateTime{}
	}

	f, ok := shape(s)
	if !ok {
		if !plausible(s) {
			return DateTime{}
		}
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return DateTime{}
		}
		return From(t)
	}

	return f.build()
}

// plausible reports whether s names a month or holds an hh:mm time.
func plausible(s string) bool {
	for i := 0; i+2 < len(s); i++ {
		if isDigit(s[i]) && s[i+1] == ':' && isDigit(s[i+2]) {
			return true
		}
	}

	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	for _, w := range words {
		if len(w) < 3 {
			continue
		}
		if _, ok := months[w[:3]]; ok {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// shape matches the token grammar and reports false if s does not follow it.
func shape(s string) (*fields, bool) {
	var toks []scanner.Token
	for _, t := range scanner.Tokenize(s) {
		if t.Kind != scanner.Comment {
			toks = append(toks, t)
		}
	}

	i := 0
	next := func() (scanner.Token, bool) {
		if i >= len(toks) {
			return scanner.Token{}, false
		}
		i++
		return toks[i-1], true
	}
	number := func(minLen, maxLen int) (int, bool) {
		t, ok := next()
		if !ok || t.Kind != scanner.Atom || len(t.Text) < minLen || len(t.Text) > maxLen {
			return 0, false
		}
		n, err := strconv.Atoi(t.Text)
		return n, err == nil && t.Text[0] != '+' && t.Text[0] != '-'
	}
	delim := func(c byte) bool {
		if i < len(toks) && toks[i].Is(c) {
			i++
			return true
		}
		return false
	}

	if i < len(toks) && toks[i].Kind == scanner.Atom && len(toks[i].Text) >= 3 &&
		weekdays[strings.ToLower(toks[i].Text[:3])] {
		i++
		delim(',')
	}

	var (
		f  fields
		ok bool
	)

	if f.day, ok = number(1, 2); !ok {
		return nil, false
	}

	mt, ok := next()
	if !ok || mt.Kind != scanner.Atom || len(mt.Text) < 3 {
		return nil, false
	}
	m, ok := months[strings.ToLower(mt.Text[:3])]
	if !ok {
		return nil, false
	}
	f.month = int(m)

	yt := i
	if f.year, ok = number(2, 4); !ok {
		return nil, false
	}
	switch len(toks[yt].Text) {
	case 2:
		if f.year < 50 {
			f.year += 2000
		} else {
			f.year += 1900
		}
	case 3:
		f.year += 1900
	}

	if f.hour, ok = number(1, 2); !ok || !delim(':') {
		return nil, false
	}
	if f.minute, ok = number(2, 2); !ok {
		return nil, false
	}
	if delim(':') {
		if f.second, ok = number(2, 2); !ok {
			return nil, false
		}
	}

	zt, ok := next()
	if !ok || zt.Kind != scanner.Atom {
		return nil, false
	}
	if f.zoneHours, f.zoneMins, ok = zone(zt.Text); !ok {
		return nil, false
	}

	if i != len(toks) {
		return nil, false
	}

	return &f, true
}

// zone reads a numeric or named zone. Unknown zone names are taken as UTC.
func zone(z string) (hours, mins int, ok bool) {
	if z[0] == '+' || z[0] == '-' {
		if len(z) != 5 {
			return 0, 0, false
		}
		n, err := strconv.Atoi(z[1:])
		if err != nil {
			return 0, 0, false
		}
		hours, mins = n/100, n%100
		if z[0] == '-' {
			hours, mins = -hours, -mins
		}
		return hours, mins, true
	}

	for _, c := range z {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return 0, 0, false
		}
	}

	return zones[strings.ToLower(z)], 0, true
}

func daysIn(month, year int) int {
	switch time.Month(month) {
	case time.February:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

// build range checks the fields and returns the DateTime they describe. A
// leap second is kept as second 59 of the same minute.
func (f *fields) build() DateTime {
	switch {
	case f.month < 1 || f.month > 12,
		f.day < 1 || f.day > daysIn(f.month, f.year),
		f.hour > 23,
		f.minute > 59,
		f.second > 60,
		f.zoneMins > 59 || f.zoneMins < -59:
		return DateTime{}
	}

	sec := f.second
	if sec == 60 {
		sec = 59
	}

	loc := time.FixedZone("", (f.zoneHours*60+f.zoneMins)*60)
	return From(time.Date(f.year, time.Month(f.month), f.day, f.hour, f.minute, sec, 0, loc))
}

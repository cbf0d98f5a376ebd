package datetime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mailfield/message/header/datetime"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		offset int
	}{
		{"12 Aug 2009 00:00:02 GMT", "Wed, 12 Aug 2009 00:00:02 +0000", 0},
		{"Tue, 10 May 2005 17:26:50 +0000 (GMT)", "Tue, 10 May 2005 17:26:50 +0000", 0},
		{"Tue, 10 May 2005 17:26:50 -0500 (EST)", "Tue, 10 May 2005 17:26:50 -0500", -300},
		{"25 Jan 2011 12:31:11 -0000", "Tue, 25 Jan 2011 12:31:11 +0000", 0},
		{"wed, 12 aug 2009 00:00:02 gmt", "Wed, 12 Aug 2009 00:00:02 +0000", 0},
		{"12 Aug 2009 00:00 GMT", "Wed, 12 Aug 2009 00:00:00 +0000", 0},
		{"1 Jan 99 00:00 EST", "Fri, 01 Jan 1999 00:00:00 -0500", -300},
		{"1 Jan 05 00:00:00 +0000", "Sat, 01 Jan 2005 00:00:00 +0000", 0},
		{"1 Jan 105 00:00:00 +0000", "Sat, 01 Jan 2005 00:00:00 +0000", 0},
		{"Sat, 31 Jan 2015 03:23:09 +0530", "Sat, 31 Jan 2015 03:23:09 +0530", 330},
		{"Fri, 30 Jan 2015 19:23:13 -0800 (PST)", "Fri, 30 Jan 2015 19:23:13 -0800", -480},
		{"12 Aug 2009 00:00:02 PDT", "Wed, 12 Aug 2009 00:00:02 -0700", -420},
		{"12 Aug 2009 00:00:02 XYZ", "Wed, 12 Aug 2009 00:00:02 +0000", 0},
		{"29 Feb 2012 10:00:00 +0000", "Wed, 29 Feb 2012 10:00:00 +0000", 0},
		{"29 Feb 2000 10:00:00 +0000", "Tue, 29 Feb 2000 10:00:00 +0000", 0},

		// the weekday is not checked, only recomputed
		{"Mon, 12 Aug 2009 00:00:02 GMT", "Wed, 12 Aug 2009 00:00:02 +0000", 0},

		// leap second
		{"31 Dec 2016 23:59:60 +0000", "Sat, 31 Dec 2016 23:59:59 +0000", 0},
	}

	for _, test := range tests {
		d := datetime.Parse(test.in)
		assert.True(t, d.Valid, test.in)
		assert.Equal(t, test.want, d.Format(), test.in)
		assert.Equal(t, test.want, d.String(), test.in)
		assert.Equal(t, test.offset, d.OffsetMinutes(), test.in)
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"   ",
		"not a date at all",
		"Mon, 29 Jul 2013 25:12:46 +0900",
		"31 Feb 2012 10:00:00 +0000",
		"29 Feb 2013 10:00:00 +0000",
		"29 Feb 1900 10:00:00 +0000",
		"31 Apr 2012 10:00:00 +0000",
		"12 Aug 2009 10:60:00 +0000",
		"12 Aug 2009 10:00:61 +0000",
		"12 Aug 2009 10:00:00 +0560",
		"0 Aug 2009 10:00:00 +0000",
		"2013",
		"1375000000",
		"20130729",
	}

	for _, in := range tests {
		d := datetime.Parse(in)
		assert.False(t, d.Valid, in)
		assert.Equal(t, "", d.Format(), in)
	}
}

func TestParse_Fallback(t *testing.T) {
	t.Parallel()

	d := datetime.Parse("2009-08-12T00:00:02Z")
	assert.True(t, d.Valid)
	assert.Equal(t, "Wed, 12 Aug 2009 00:00:02 +0000", d.Format())

	d = datetime.Parse("August 12, 2009")
	assert.True(t, d.Valid)
	assert.Equal(t, 2009, d.Time.Year())
	assert.Equal(t, time.August, d.Time.Month())
	assert.Equal(t, 12, d.Time.Day())
}

func TestParse_Instant(t *testing.T) {
	t.Parallel()

	d := datetime.Parse("Tue, 10 May 2005 17:26:50 -0500")
	want := time.Date(2005, time.May, 10, 22, 26, 50, 0, time.UTC)
	assert.True(t, want.Equal(d.Time))
}

func TestNow(t *testing.T) {
	t.Parallel()

	before := time.Now().Truncate(time.Second)
	d := datetime.Now()
	after := time.Now()

	assert.True(t, d.Valid)
	assert.Equal(t, 0, d.Time.Nanosecond())
	assert.False(t, d.Time.Before(before))
	assert.False(t, d.Time.After(after))
	assert.NotEqual(t, "", d.Format())
}

func TestDateTime_Zero(t *testing.T) {
	t.Parallel()

	var d datetime.DateTime
	assert.False(t, d.Valid)
	assert.Equal(t, "", d.Format())
}

package field

import (
	"bytes"
	"strings"
)

// BadStartError is returned when the header begins with junk text that does not
// appear to be a header. This text is preserved in the error object.
type BadStartError struct {
	BadStart []byte // the text skipped at the start of header
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// Line represents the unparsed content for a complete header field line.
type Line []byte

// Lines represents the unparsed content for zero or more header field
// lines.
type Lines []Line

// ParseLines splits the given input into lines according to the rules we use to
// determine how to break header fields up inside a header. The input bytes are
// expected to include only the header. It returns the input as Lines, ready to
// feed into SplitLine.
//
// This does not follow RFC 5322 precisely. It will accept input that would be
// rejected by the RFC as part of the effort to be liberal in what it accepts,
// but strict in what it generates.
//
// If the first line (or lines) of input start with spaces or contain no colons,
// these lines will be skipped in the Lines returned. However, a BadStartError
// will be returned.
//
// From then on, this will start a new field on any line that does not start
// with a space and contains a colon. Any other line is a continuation of the
// field before it.
func ParseLines(m, lb []byte) (Lines, error) {
	h := make(Lines, 0, len(m)/80)
	var err *BadStartError
	for _, line := range bytes.SplitAfter(m, lb) {
		if len(line) == 0 {
			break
		}
		if line[0] == '\t' || line[0] == ' ' || !bytes.Contains(line, []byte(":")) {
			// Start with a continuation? Weird, uh...
			if len(h) == 0 {
				if err != nil {
					err.BadStart = append(err.BadStart, line...)
				} else {
					err = &BadStartError{line}
				}
				continue
			}

			h[len(h)-1] = append(h[len(h)-1], line...)
		} else {
			h = append(h, line)
		}
	}

	if err != nil {
		return h, err
	}
	return h, nil
}

// SplitLine separates a field line into its name and its unfolded, trimmed
// body. The body is returned exactly as found on the wire, encoded-words and
// all. A line without a colon is returned as a name with an empty body.
func SplitLine(f Line, lb []byte) (name, body string) {
	rawField := bytes.TrimRight(f, string(lb))

	ix := bytes.IndexByte(rawField, ':')
	if ix < 0 {
		return strings.TrimSpace(string(DefaultFoldEncoding.Unfold(rawField))), ""
	}

	// unfold is not affected by choices made when folding, so the default
	// encoding is fine here
	name = strings.TrimSpace(string(DefaultFoldEncoding.Unfold(rawField[:ix])))
	body = string(bytes.TrimSpace(DefaultFoldEncoding.Unfold(rawField[ix+1:])))
	return name, body
}

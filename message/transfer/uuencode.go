package transfer

import (
	"bytes"
	"io"
	"strings"
)

// uuLineLength is the number of raw bytes packed into each uuencoded line.
const uuLineLength = 45

// uuChar maps a 6-bit value to its uuencoded character. Zero is written as a
// backtick rather than a space so lines never end in trailing whitespace.
func uuChar(v byte) byte {
	v &= 0x3f
	if v == 0 {
		return '`'
	}
	return v + ' '
}

// uuValue maps an encoded character back to its 6-bit value. Both space and
// backtick decode to zero.
func uuValue(c byte) byte {
	return (c - ' ') & 0x3f
}

// appendUULine packs up to 45 bytes of src as one line, newline included.
func appendUULine(dst, src []byte) []byte {
	dst = append(dst, uuChar(byte(len(src))))
	for i := 0; i < len(src); i += 3 {
		var g [3]byte
		copy(g[:], src[i:])
		dst = append(dst,
			uuChar(g[0]>>2),
			uuChar(g[0]<<4|g[1]>>4),
			uuChar(g[1]<<2|g[2]>>6),
			uuChar(g[2]),
		)
	}
	return append(dst, '\n')
}

// UUEncode packs b into uuencoded lines. No begin or end line is written.
func UUEncode(b []byte) []byte {
	out := make([]byte, 0, (len(b)/uuLineLength+1)*62)
	for len(b) > 0 {
		n := uuLineLength
		if n > len(b) {
			n = len(b)
		}
		out = appendUULine(out, b[:n])
		b = b[n:]
	}
	return out
}

// stripBegin removes a leading "begin <mode> <name>" line.
func stripBegin(s string) string {
	if !strings.HasPrefix(s, "begin ") {
		return s
	}

	rest := s[len("begin "):]
	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits >= len(rest) || rest[digits] != ' ' {
		return s
	}

	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return s
	}
	return rest[nl+1:]
}

// UUDecode unpacks uuencoded text. A leading "begin" line is skipped if
// present, and decoding stops at a zero-length line or an "end" line. Missing
// characters at the end of a short line are read as zero.
func UUDecode(s string) []byte {
	s = stripBegin(s)

	out := make([]byte, 0, len(s)*3/4)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if line == "end" {
			break
		}

		n := int(uuValue(line[0]))
		if n == 0 {
			break
		}

		enc := line[1:]
		for i := 0; n > 0; i += 4 {
			var v [4]byte
			for j := range v {
				if i+j < len(enc) {
					v[j] = uuValue(enc[i+j])
				}
			}

			g := [3]byte{
				v[0]<<2 | v[1]>>4,
				v[1]<<4 | v[2]>>2,
				v[2]<<6 | v[3],
			}
			take := 3
			if n < take {
				take = n
			}
			out = append(out, g[:take]...)
			n -= take
		}
	}

	return out
}

// uuWriter buffers input until it has a full line worth of bytes.
type uuWriter struct {
	w   io.Writer
	buf []byte
	err error
}

func (uw *uuWriter) Write(b []byte) (int, error) {
	if uw.err != nil {
		return 0, uw.err
	}

	uw.buf = append(uw.buf, b...)
	full := len(uw.buf) / uuLineLength * uuLineLength
	if full > 0 {
		if _, err := uw.w.Write(UUEncode(uw.buf[:full])); err != nil {
			uw.err = err
			return 0, err
		}
		uw.buf = append(uw.buf[:0], uw.buf[full:]...)
	}

	return len(b), nil
}

func (uw *uuWriter) Close() error {
	if uw.err != nil {
		return uw.err
	}
	if len(uw.buf) == 0 {
		return nil
	}
	_, err := uw.w.Write(UUEncode(uw.buf))
	uw.buf = uw.buf[:0]
	return err
}

// NewUUEncoder returns an io.WriteCloser that writes uuencoded lines of the
// bytes written to it. Close flushes the final partial line.
func NewUUEncoder(w io.Writer) io.WriteCloser {
	return &uuWriter{w: w}
}

// uuReader decodes its whole input on the first Read.
type uuReader struct {
	r   io.Reader
	dec *bytes.Reader
}

func (ur *uuReader) Read(p []byte) (int, error) {
	if ur.dec == nil {
		b, err := io.ReadAll(ur.r)
		if err != nil {
			return 0, err
		}
		ur.dec = bytes.NewReader(UUDecode(string(b)))
	}
	return ur.dec.Read(p)
}

// NewUUDecoder returns an io.Reader that yields the binary data held in the
// uuencoded text read from r.
func NewUUDecoder(r io.Reader) io.Reader {
	return &uuReader{r: r}
}

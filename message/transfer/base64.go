package transfer

import (
	"encoding/base64"
	"io"
)

const defaultBase64LineLength = 76

var defaultBase64LineBreak = []byte("\r\n")

// newlineWriter breaks the stream written through it into lines of every
// bytes, each terminated by lbr.
type newlineWriter struct {
	every int
	acc   int // bytes written on the current line
	lbr   []byte
	w     io.Writer
}

func (nw *newlineWriter) Write(b []byte) (int, error) {
	wrote := 0
	for len(b) > 0 {
		n := nw.every - nw.acc
		if n > len(b) {
			n = len(b)
		}

		ln, err := nw.w.Write(b[:n])
		wrote += ln
		nw.acc += ln
		if err != nil {
			return wrote, err
		}
		b = b[n:]

		if nw.acc == nw.every {
			if _, err := nw.w.Write(nw.lbr); err != nil {
				return wrote, err
			}
			nw.acc = 0
		}
	}

	return wrote, nil
}

// Close terminates a partial final line.
func (nw *newlineWriter) Close() error {
	if nw.acc == 0 {
		return nil
	}
	nw.acc = 0
	_, err := nw.w.Write(nw.lbr)
	return err
}

// NewBase64Encoder will translate all bytes written to the returned
// io.WriteCloser into base64 encoding and write those to the give io.Writer.
// Output lines are 76 characters long and end in CRLF.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	nw := &newlineWriter{
		every: defaultBase64LineLength,
		lbr:   defaultBase64LineBreak,
		w:     w,
	}
	bw := base64.NewEncoder(base64.StdEncoding, nw)
	return &wrapped{Writer: bw, close: func() error {
		if err := bw.Close(); err != nil {
			return err
		}
		return nw.Close()
	}}
}

// NewBase64Decoder will translate all bytes read from the given io.Reader as
// base64 and return the binary data to the returned io.Reader. Line breaks in
// the input are ignored.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}

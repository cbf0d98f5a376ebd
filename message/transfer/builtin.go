package transfer

import (
	"io"
	"mime/quotedprintable"
)

// wrapped pairs a writer with the function that finishes it.
type wrapped struct {
	io.Writer
	close func() error
}

func (w *wrapped) Close() error {
	if w.close == nil {
		return nil
	}
	return w.close()
}

// NewAsIsEncoder returns an io.WriteCloser that passes bytes through to w.
// Closing it does not close w.
func NewAsIsEncoder(w io.Writer) io.WriteCloser {
	return &wrapped{Writer: w}
}

// NewAsIsDecoder returns r.
func NewAsIsDecoder(r io.Reader) io.Reader {
	return r
}

// NewQuotedPrintableEncoder returns an io.WriteCloser that writes the
// quoted-printable form of its input to w. CR and LF are escaped like any
// other control byte, so line structure is not preserved in the output.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	qpw.Binary = true
	return &wrapped{Writer: qpw, close: qpw.Close}
}

// NewQuotedPrintableDecoder returns an io.Reader yielding the bytes held in
// the quoted-printable text read from r.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}

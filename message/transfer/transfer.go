package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Names of the built-in transfer encodings.
const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be transformed between quoted-printable and binary data
	Base64          = "base64"           // bytes will be transformed between base64 and binary data
	XUUEncode       = "x-uuencode"       // bytes will be transformed between uuencoded lines and binary data
)

// ErrUnknownCodec is returned by Lookup when no codec or alias is registered
// under the requested name.
var ErrUnknownCodec = errors.New("unknown transfer encoding")

// Codec is a named pair of functions that transform to and from a transfer
// encoding.
type Codec struct {
	// Name is the name the codec was created with. Lookups may reach the codec
	// under other names as well.
	Name string

	// Encoder returns an io.WriteCloser, which will encode binary data and
	// write the encoded form to the given io.Writer. You must call Close() on
	// the returned io.WriteCloser when you are finished.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder returns an io.Reader, which will read from the given io.Reader
	// and decode the encoded data back into binary form.
	Decoder func(io.Reader) io.Reader
}

// Encode returns the encoded form of b.
func (c *Codec) Encode(b []byte) (string, error) {
	buf := &bytes.Buffer{}
	wc := c.Encoder(buf)
	if _, err := wc.Write(b); err != nil {
		return "", fmt.Errorf("%s encode: %w", c.Name, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("%s encode: %w", c.Name, err)
	}
	return buf.String(), nil
}

// Decode returns the binary data held in the encoded string s.
func (c *Codec) Decode(s string) ([]byte, error) {
	b, err := io.ReadAll(c.Decoder(strings.NewReader(s)))
	if err != nil {
		return nil, fmt.Errorf("%s decode: %w", c.Name, err)
	}
	return b, nil
}

// Registry maps transfer encoding names to codecs. Names are matched without
// regard to case.
//
// A Registry is intended to be filled once and then read. Calling Register or
// Alias while other goroutines call Lookup requires external locking.
type Registry struct {
	codecs  map[string]*Codec
	aliases map[string]string
}

// NewRegistry returns a Registry holding the built-in codecs: the as-is
// encodings (none, 7bit, 8bit, binary), base64, quoted-printable, and
// x-uuencode with its uuencode and x-uue aliases.
func NewRegistry() *Registry {
	r := &Registry{
		codecs:  make(map[string]*Codec, 8),
		aliases: make(map[string]string, 2),
	}

	for _, name := range []string{None, Bit7, Bit8, Binary} {
		r.Register(name, &Codec{name, NewAsIsEncoder, NewAsIsDecoder})
	}
	r.Register(QuotedPrintable, &Codec{QuotedPrintable, NewQuotedPrintableEncoder, NewQuotedPrintableDecoder})
	r.Register(Base64, &Codec{Base64, NewBase64Encoder, NewBase64Decoder})
	r.Register(XUUEncode, &Codec{XUUEncode, NewUUEncoder, NewUUDecoder})
	r.Alias("uuencode", XUUEncode)
	r.Alias("x-uue", XUUEncode)

	return r
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds c under name, replacing any codec already registered there.
// Aliases pointing at name will resolve to c from now on.
func (r *Registry) Register(name string, c *Codec) {
	if r.codecs == nil {
		r.codecs = make(map[string]*Codec)
	}
	r.codecs[key(name)] = c
}

// Alias makes alias resolve to whatever codec is registered under target at
// lookup time.
func (r *Registry) Alias(alias, target string) {
	if r.aliases == nil {
		r.aliases = make(map[string]string)
	}
	r.aliases[key(alias)] = key(target)
}

// Lookup returns the codec for name. A codec registered directly under name
// wins over an alias of the same name. If nothing matches, the error wraps
// ErrUnknownCodec.
func (r *Registry) Lookup(name string) (*Codec, error) {
	k := key(name)
	if c, ok := r.codecs[k]; ok {
		return c, nil
	}

	if target, ok := r.aliases[k]; ok {
		if c, ok := r.codecs[target]; ok {
			return c, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// Names returns every name Lookup will accept, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.codecs)+len(r.aliases))
	for n := range r.codecs {
		names = append(names, n)
	}
	for n, target := range r.aliases {
		if _, direct := r.codecs[n]; direct {
			continue
		}
		if _, ok := r.codecs[target]; ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// ApplyTransferEncoding returns an io.WriteCloser that encodes everything
// written to it with the codec named cte and writes the result to w. An
// unknown name is returned as an error so the caller can choose a fallback.
//
// You must call Close() on the returned io.WriteCloser when you are finished
// writing.
func ApplyTransferEncoding(r *Registry, cte string, w io.Writer) (io.WriteCloser, error) {
	c, err := r.Lookup(cte)
	if err != nil {
		return nil, err
	}
	return c.Encoder(w), nil
}

// ApplyTransferDecoding returns an io.Reader that decodes the data read from
// rd using the codec named cte.
func ApplyTransferDecoding(r *Registry, cte string, rd io.Reader) (io.Reader, error) {
	c, err := r.Lookup(cte)
	if err != nil {
		return nil, err
	}
	return c.Decoder(rd), nil
}

package header

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zostay/go-mailfield/message/header/field"
)

var (
	// ErrNoSuchField is returned by Get when the named field is not present.
	ErrNoSuchField = errors.New("no such header field")

	// ErrManyFields is returned by Get when the named field appears more than
	// once.
	ErrManyFields = errors.New("header field appears more than once")
)

// Header is an ordered collection of fields built by a single Registry.
type Header struct {
	reg    *Registry
	fields []Field
}

// New returns an empty Header whose fields will be built by reg. A nil reg
// means a registry with the default settings.
func New(reg *Registry) *Header {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Header{reg: reg}
}

// Parse splits the header block m into fields separated by lb and builds each
// one with reg. When reg is nil, a registry with the default settings and lb
// as its line break is used.
//
// A header that begins with junk text is still parsed. The junk is skipped and
// a *field.BadStartError holding it is returned with the Header.
func Parse(m []byte, lb Break, reg *Registry) (*Header, error) {
	if reg == nil {
		reg = NewRegistry(WithBreak(lb))
	}
	if lb == Meh {
		lb = reg.lb
	}

	lines, err := field.ParseLines(m, lb.Bytes())

	h := &Header{
		reg:    reg,
		fields: make([]Field, 0, len(lines)),
	}
	for _, line := range lines {
		name, body := field.SplitLine(line, lb.Bytes())
		h.fields = append(h.fields, reg.New(name, body))
	}

	return h, err
}

// Registry returns the registry that builds the fields of this header.
func (h *Header) Registry() *Registry { return h.reg }

// Len returns the number of fields.
func (h *Header) Len() int { return len(h.fields) }

// Fields returns every field in order.
func (h *Header) Fields() []Field { return h.fields }

// Add builds a field for name and value and appends it.
func (h *Header) Add(name, value string) Field {
	f := h.reg.New(name, value)
	h.fields = append(h.fields, f)
	return f
}

// AddField appends an already built field.
func (h *Header) AddField(f Field) {
	h.fields = append(h.fields, f)
}

// GetAll returns every field called name, in order.
func (h *Header) GetAll(name string) []Field {
	var out []Field
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			out = append(out, f)
		}
	}
	return out
}

// Get returns the only field called name. It fails with ErrNoSuchField or
// ErrManyFields otherwise.
func (h *Header) Get(name string) (Field, error) {
	fs := h.GetAll(name)
	switch len(fs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoSuchField, name)
	case 1:
		return fs[0], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrManyFields, name)
}

// WriteTo writes the encoded form of every field that is included in output.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, f := range h.fields {
		n, err := io.WriteString(w, f.Encoded())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the encoded header.
func (h *Header) String() string {
	var sb strings.Builder
	_, _ = h.WriteTo(&sb)
	return sb.String()
}

package header

import (
	"strings"

	"github.com/zostay/go-mailfield/message/header/field"
)

// Field is the behavior shared by every header field variant.
type Field interface {
	// Name returns the field name in canonical casing.
	Name() string

	// Value returns the field body. This is the raw text the field was built
	// from, unless the variant normalizes it or the field has been changed.
	Value() string

	// Decoded returns the body as readable text with encoded-words decoded.
	Decoded() string

	// Encoded returns the whole folded field line, ending in a line break, or
	// the empty string when the field is left out of output.
	Encoded() string

	// Parse forces the structured parse of the raw text. It is called
	// implicitly by every structured accessor.
	Parse()

	// IncludeInOutput reports whether Encoded will write anything.
	IncludeInOutput() bool

	// SetIncludeInOutput changes whether Encoded will write anything.
	SetIncludeInOutput(bool)
}

// base holds the state every variant shares.
type base struct {
	reg     *Registry
	name    string
	raw     string
	include bool
	encoded cell[string]
}

func newBase(reg *Registry, name, raw string) base {
	return base{
		reg:     reg,
		name:    reg.Canonical(name),
		raw:     strings.TrimSpace(raw),
		include: true,
	}
}

// Name returns the canonical field name.
func (b *base) Name() string { return b.name }

// IncludeInOutput reports whether Encoded will write anything.
func (b *base) IncludeInOutput() bool { return b.include }

// SetIncludeInOutput changes whether Encoded will write anything.
func (b *base) SetIncludeInOutput(include bool) { b.include = include }

// foldText caches and returns the folded line for a single-valued body.
func (b *base) foldText(value func() string) string {
	if !b.include {
		return ""
	}
	return b.encoded.get(func() string {
		var sb strings.Builder
		_, _ = b.reg.fold.FoldText(&sb, b.name, value(), b.reg.lb.fold())
		return sb.String()
	})
}

// foldUnits caches and returns the folded line for a list body.
func (b *base) foldUnits(units func() []field.Unit) string {
	if !b.include {
		return ""
	}
	return b.encoded.get(func() string {
		var sb strings.Builder
		_, _ = b.reg.fold.FoldUnits(&sb, b.name, units(), b.reg.lb.fold())
		return sb.String()
	})
}

// UnstructuredField is any field without a structure of its own, such as
// Subject. Non-ASCII words are written as encoded-words.
type UnstructuredField struct {
	base
	decoded cell[string]
}

var _ Field = (*UnstructuredField)(nil)

// Value returns the raw body.
func (f *UnstructuredField) Value() string { return f.raw }

// Parse decodes any encoded-words in the body.
func (f *UnstructuredField) Parse() { f.Decoded() }

// Decoded returns the body with encoded-words decoded. Malformed words are
// left as they are.
func (f *UnstructuredField) Decoded() string {
	return f.decoded.get(func() string {
		s, err := field.Decode(f.raw)
		if err != nil {
			f.reg.logger.Debug("header field has undecodable words",
				"field", f.name,
				"error", err)
		}
		return s
	})
}

// Encoded returns the folded field line.
func (f *UnstructuredField) Encoded() string {
	return f.foldText(func() string {
		return field.EncodeText(f.Decoded(), f.reg.charset)
	})
}

package header

import (
	"log/slog"
	"net/textproto"
	"strings"
	"time"

	"github.com/zostay/go-mailfield/message/header/field"
)

// Kind selects the variant a Registry builds for a field name.
type Kind int

// The field kinds known to a Registry.
const (
	Unstructured Kind = iota // free text, encoded-words decoded
	AddressList              // mailboxes and groups
	Suppressed               // address list left out of output by default
	Date                     // a single date-time
	Trace                    // trace info followed by a date
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case Unstructured:
		return "unstructured"
	case AddressList:
		return "address-list"
	case Suppressed:
		return "suppressed"
	case Date:
		return "date"
	case Trace:
		return "trace"
	}
	return "unknown"
}

type kindEntry struct {
	canonical string
	kind      Kind
}

// Registry maps field names to the kind of field built for them and carries
// the settings shared by every field it builds: the charset for encoded-words,
// the fold encoding, the line break, and the logger.
//
// A Registry should be configured before fields are built from it. Fields keep
// a pointer to the Registry that built them.
type Registry struct {
	kinds   map[string]kindEntry
	charset string
	fold    *field.FoldEncoding
	lb      Break
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithCharset sets the charset used for encoded-words on output. Text the
// charset cannot hold is written as UTF-8 instead.
func WithCharset(cs string) Option {
	return func(r *Registry) {
		if cs != "" {
			r.charset = cs
		}
	}
}

// WithFoldEncoding sets the line lengths used when folding output.
func WithFoldEncoding(vf *field.FoldEncoding) Option {
	return func(r *Registry) {
		if vf != nil {
			r.fold = vf
		}
	}
}

// WithBreak sets the line break written after each line of output.
func WithBreak(lb Break) Option {
	return func(r *Registry) {
		if lb != Meh {
			r.lb = lb
		}
	}
}

// WithLogger sets where recoverable parse problems are reported.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

var standardKinds = []kindEntry{
	{"From", AddressList},
	{"Sender", AddressList},
	{"Reply-To", AddressList},
	{"To", AddressList},
	{"Cc", AddressList},
	{"Resent-From", AddressList},
	{"Resent-Sender", AddressList},
	{"Resent-To", AddressList},
	{"Resent-Cc", AddressList},
	{"Bcc", Suppressed},
	{"Resent-Bcc", Suppressed},
	{"Date", Date},
	{"Resent-Date", Date},
	{"Received", Trace},

	{"Subject", Unstructured},
	{"Comments", Unstructured},
	{"Keywords", Unstructured},
	{"Message-ID", Unstructured},
	{"In-Reply-To", Unstructured},
	{"References", Unstructured},
	{"Resent-Message-ID", Unstructured},
	{"Return-Path", Unstructured},
	{"MIME-Version", Unstructured},
	{"Content-Type", Unstructured},
	{"Content-Transfer-Encoding", Unstructured},
	{"Content-Disposition", Unstructured},
	{"Content-ID", Unstructured},
	{"Content-Description", Unstructured},
}

// NewRegistry returns a Registry that knows the standard RFC 5322 fields. By
// default it encodes in UTF-8, folds with field.DefaultFoldEncoding, breaks
// lines with CRLF, and discards log output.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		kinds:   make(map[string]kindEntry, len(standardKinds)),
		charset: field.DefaultCharset,
		fold:    field.DefaultFoldEncoding,
		lb:      CRLF,
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, e := range standardKinds {
		r.Register(e.canonical, e.kind)
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register sets the kind built for name. The casing of name is kept as the
// canonical spelling of the field.
func (r *Registry) Register(name string, k Kind) {
	r.kinds[strings.ToLower(name)] = kindEntry{name, k}
}

// Canonical returns the registered spelling of name, or the usual MIME
// casing when name is not registered.
func (r *Registry) Canonical(name string) string {
	if e, ok := r.kinds[strings.ToLower(name)]; ok {
		return e.canonical
	}
	return textproto.CanonicalMIMEHeaderKey(name)
}

// KindOf returns the kind built for name. Unknown names are Unstructured.
func (r *Registry) KindOf(name string) Kind {
	if e, ok := r.kinds[strings.ToLower(name)]; ok {
		return e.kind
	}
	return Unstructured
}

// Charset returns the charset used for encoded-words on output.
func (r *Registry) Charset() string { return r.charset }

// Break returns the line break used on output.
func (r *Registry) Break() Break { return r.lb }

// New builds the field variant registered for name.
func (r *Registry) New(name, value string) Field {
	switch r.KindOf(name) {
	case AddressList:
		return r.NewAddressField(name, value)
	case Suppressed:
		return r.NewSuppressedField(name, value)
	case Date:
		return r.NewDateField(name, value)
	case Trace:
		return r.NewTraceField(name, value)
	}
	return r.NewUnstructuredField(name, value)
}

// NewUnstructuredField builds a free text field.
func (r *Registry) NewUnstructuredField(name, value string) *UnstructuredField {
	return &UnstructuredField{base: newBase(r, name, value)}
}

// NewAddressField builds an address list field.
func (r *Registry) NewAddressField(name, value string) *AddressField {
	return &AddressField{base: newBase(r, name, value)}
}

// NewSuppressedField builds an address list field that is left out of output
// until SetIncludeInOutput(true) is called.
func (r *Registry) NewSuppressedField(name, value string) *SuppressedField {
	f := r.NewAddressField(name, value)
	f.include = false
	return &SuppressedField{f}
}

// NewDateField builds a date field. An empty value means the current time.
func (r *Registry) NewDateField(name, value string) *DateField {
	f := &DateField{base: newBase(r, name, value)}
	if f.raw == "" {
		f.SetDate(time.Now())
	}
	return f
}

// NewDateTimeField builds a date field holding t.
func (r *Registry) NewDateTimeField(name string, t time.Time) *DateField {
	f := &DateField{base: newBase(r, name, "")}
	f.SetDate(t)
	return f
}

// NewTraceField builds a trace field.
func (r *Registry) NewTraceField(name, value string) *TraceField {
	return &TraceField{base: newBase(r, name, value)}
}

var defaultRegistry = NewRegistry()

// NewFrom returns a From field built with the default settings.
func NewFrom(value string) *AddressField {
	return defaultRegistry.NewAddressField("From", value)
}

// NewSender returns a Sender field built with the default settings.
func NewSender(value string) *AddressField {
	return defaultRegistry.NewAddressField("Sender", value)
}

// NewReplyTo returns a Reply-To field built with the default settings.
func NewReplyTo(value string) *AddressField {
	return defaultRegistry.NewAddressField("Reply-To", value)
}

// NewTo returns a To field built with the default settings.
func NewTo(value string) *AddressField {
	return defaultRegistry.NewAddressField("To", value)
}

// NewCc returns a Cc field built with the default settings.
func NewCc(value string) *AddressField {
	return defaultRegistry.NewAddressField("Cc", value)
}

// NewBcc returns a Bcc field built with the default settings.
func NewBcc(value string) *SuppressedField {
	return defaultRegistry.NewSuppressedField("Bcc", value)
}

// NewResentFrom returns a Resent-From field built with the default settings.
func NewResentFrom(value string) *AddressField {
	return defaultRegistry.NewAddressField("Resent-From", value)
}

// NewResentSender returns a Resent-Sender field built with the default
// settings.
func NewResentSender(value string) *AddressField {
	return defaultRegistry.NewAddressField("Resent-Sender", value)
}

// NewResentTo returns a Resent-To field built with the default settings.
func NewResentTo(value string) *AddressField {
	return defaultRegistry.NewAddressField("Resent-To", value)
}

// NewResentCc returns a Resent-Cc field built with the default settings.
func NewResentCc(value string) *AddressField {
	return defaultRegistry.NewAddressField("Resent-Cc", value)
}

// NewResentBcc returns a Resent-Bcc field built with the default settings.
func NewResentBcc(value string) *SuppressedField {
	return defaultRegistry.NewSuppressedField("Resent-Bcc", value)
}

// NewDate returns a Date field built with the default settings.
func NewDate(value string) *DateField {
	return defaultRegistry.NewDateField("Date", value)
}

// NewResentDate returns a Resent-Date field built with the default settings.
func NewResentDate(value string) *DateField {
	return defaultRegistry.NewDateField("Resent-Date", value)
}

// NewReceived returns a Received field built with the default settings.
func NewReceived(value string) *TraceField {
	return defaultRegistry.NewTraceField("Received", value)
}

// NewUnstructured returns a free text field built with the default settings.
func NewUnstructured(name, value string) *UnstructuredField {
	return defaultRegistry.NewUnstructuredField(name, value)
}

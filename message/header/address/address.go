// Package address parses and renders RFC 5322 address lists: mailboxes with
// optional display names and comments, and named groups of mailboxes.
//
// Parsing never fails. A unit of the list that cannot be understood is kept as
// a literal Address that renders exactly as it was found, so a field holding
// junk can still be written back out.
package address

import (
	"strings"

	"github.com/zostay/go-mailfield/message/header/field"
)

// Address is a single mailbox.
type Address struct {
	DisplayName string // decoded, without quotes
	Local       string // verbatim, a quoted local part keeps its quotes
	Domain      string // verbatim, may be empty
	Comment     string // text of any comments found in the mailbox

	// Raw is set only on a literal: the text of a unit that could not be
	// parsed. A literal has no other parts and renders as Raw.
	Raw string
}

// Entry is either an *Address or a *Group.
type Entry interface {
	String() string
	Encoded(charset string) string
	mailboxes() []*Address
}

// Literal returns true when the address holds unparsed text.
func (a *Address) Literal() bool {
	return a.Raw != ""
}

// Address returns local@domain, just the local part if there is no domain, or
// the raw text of a literal.
func (a *Address) Address() string {
	switch {
	case a.Literal():
		return a.Raw
	case a.Domain == "":
		return a.Local
	}
	return a.Local + "@" + a.Domain
}

// String renders the mailbox with its display name and comment. Non-ASCII
// text is left as-is.
func (a *Address) String() string {
	if a.Literal() {
		return a.Raw
	}

	return a.render(quotePhrase(a.DisplayName), a.Address(), a.Comment)
}

// Encoded renders the mailbox for the wire. The display name, local part,
// domain, and comment are each turned into an encoded-word on their own when
// they hold non-ASCII text. The non-ASCII words of a literal are encoded as
// they would be in unstructured text.
func (a *Address) Encoded(charset string) string {
	if a.Literal() {
		return field.EncodeText(a.Raw, charset)
	}

	dn := quotePhrase(a.DisplayName)
	if !field.IsASCII(a.DisplayName) {
		dn = field.EncodeWord(a.DisplayName, charset)
	}

	as := field.EncodeWord(a.Local, charset)
	if a.Domain != "" {
		as += "@" + field.EncodeWord(a.Domain, charset)
	}

	return a.render(dn, as, field.EncodeWord(a.Comment, charset))
}

func (a *Address) render(dn, as, comment string) string {
	var b strings.Builder
	if dn != "" {
		b.WriteString(dn)
		b.WriteString(" <")
		b.WriteString(as)
		b.WriteString(">")
	} else {
		b.WriteString(as)
	}

	if comment != "" {
		b.WriteString(" (")
		b.WriteString(escapeComment(comment))
		b.WriteString(")")
	}

	return b.String()
}

func (a *Address) mailboxes() []*Address { return []*Address{a} }

// Group is a named list of mailboxes, written as "name: a, b;".
type Group struct {
	Name    string
	Members []*Address
}

// String renders the group and its members.
func (g *Group) String() string {
	ms := make([]string, len(g.Members))
	for i, m := range g.Members {
		ms[i] = m.String()
	}
	return renderGroup(quotePhrase(g.Name), ms)
}

// Encoded renders the group for the wire, encoding each member separately.
func (g *Group) Encoded(charset string) string {
	name := quotePhrase(g.Name)
	if !field.IsASCII(g.Name) {
		name = field.EncodeWord(g.Name, charset)
	}

	ms := make([]string, len(g.Members))
	for i, m := range g.Members {
		ms[i] = m.Encoded(charset)
	}
	return renderGroup(name, ms)
}

func renderGroup(name string, members []string) string {
	if len(members) == 0 {
		return name + ":;"
	}
	return name + ": " + strings.Join(members, ", ") + ";"
}

func (g *Group) mailboxes() []*Address { return g.Members }

// specials are the characters that force a display name into quotes.
const specials = `()<>[]:;@\,."`

// needsQuotes reports whether s would not survive being written as a plain
// sequence of atoms: it holds specials, or whitespace that re-parsing would
// collapse.
func needsQuotes(s string) bool {
	if s == "" {
		return false
	}
	return strings.ContainsAny(s, specials) ||
		strings.ContainsAny(s, "\t\r\n") ||
		strings.Contains(s, "  ") ||
		s[0] == ' ' || s[len(s)-1] == ' '
}

// quotePhrase returns s as-is when it can be written as a sequence of atoms
// and as a quoted-string otherwise.
func quotePhrase(s string) string {
	if !needsQuotes(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// escapeComment backslash-escapes the characters that would end or nest a
// comment early.
func escapeComment(s string) string {
	if !strings.ContainsAny(s, `()\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', ')', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

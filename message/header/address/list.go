package address

import (
	"fmt"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// List is an ordered address list. Order is kept on output.
type List []Entry

// Mailboxes returns every mailbox in the list with group members expanded in
// place.
func (l List) Mailboxes() []*Address {
	as := make([]*Address, 0, len(l))
	for _, e := range l {
		as = append(as, e.mailboxes()...)
	}
	return as
}

// Groups returns only the groups of the list.
func (l List) Groups() []*Group {
	var gs []*Group
	for _, e := range l {
		if g, ok := e.(*Group); ok {
			gs = append(gs, g)
		}
	}
	return gs
}

// Addresses returns the bare address of every mailbox, group members
// included.
func (l List) Addresses() []string {
	mbs := l.Mailboxes()
	as := make([]string, len(mbs))
	for i, a := range mbs {
		as[i] = a.Address()
	}
	return as
}

// Formatted returns the rendered form of each entry of the list. A group is a
// single entry holding its name and all of its members.
func (l List) Formatted() []string {
	fs := make([]string, len(l))
	for i, e := range l {
		fs[i] = e.String()
	}
	return fs
}

// DisplayNames returns the display name of every mailbox that has one.
func (l List) DisplayNames() []string {
	var dns []string
	for _, a := range l.Mailboxes() {
		if a.DisplayName != "" {
			dns = append(dns, a.DisplayName)
		}
	}
	return dns
}

// GroupNames returns the name of every group.
func (l List) GroupNames() []string {
	gs := l.Groups()
	ns := make([]string, len(gs))
	for i, g := range gs {
		ns[i] = g.Name
	}
	return ns
}

// String returns the decoded list as it would be written in a field body.
func (l List) String() string {
	return strings.Join(l.Formatted(), ", ")
}

// Encoded returns the wire form of each entry, ready to be folded.
func (l List) Encoded(charset string) []string {
	es := make([]string, len(l))
	for i, e := range l {
		es[i] = e.Encoded(charset)
	}
	return es
}

// AddrList converts the mailboxes of the list into a go-addr list. Groups are
// flattened and literals become mailboxes holding only a local part.
func (l List) AddrList() addr.AddressList {
	mbs := l.Mailboxes()
	al := make(addr.AddressList, 0, len(mbs))
	for _, a := range mbs {
		orig := a.String()

		var as *addr.AddrSpec
		if a.Literal() {
			as = addr.NewAddrSpecParsed(a.Raw, "", a.Raw)
		} else {
			as = addr.NewAddrSpecParsed(a.Local, a.Domain, a.Address())
		}

		mb, err := addr.NewMailboxParsed(a.DisplayName, as, a.Comment, orig)
		if err != nil {
			mb, _ = addr.NewMailboxParsed(a.DisplayName, as, "", orig)
		}
		al = append(al, mb)
	}
	return al
}

// ParseStrict checks s against the RFC 5322 grammar of go-addr before parsing
// it. Input that go-addr rejects is returned as an error instead of being
// degraded.
func ParseStrict(s string) (List, error) {
	if _, err := addr.ParseEmailAddressList(s); err != nil {
		return nil, fmt.Errorf("strict address list: %w", err)
	}
	return Parse(s), nil
}

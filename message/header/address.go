package header

import (
	"slices"

	"github.com/zostay/go-mailfield/message/header/address"
	"github.com/zostay/go-mailfield/message/header/field"
)

// AddressField holds a list of mailboxes and groups, as found in From, To,
// Cc, and the like.
type AddressField struct {
	base
	list    cell[address.List]
	changed bool
}

var _ Field = (*AddressField)(nil)

func (f *AddressField) parse() address.List {
	l := address.Parse(f.raw)
	for _, a := range l.Mailboxes() {
		if a.Literal() {
			f.reg.logger.Debug("address kept as literal text",
				"field", f.name,
				"text", a.Raw)
		}
	}
	return l
}

// Parse parses the raw body into an address list if that has not happened
// yet.
func (f *AddressField) Parse() { f.AddressList() }

// AddressList returns the parsed address list.
func (f *AddressField) AddressList() address.List {
	return f.list.get(f.parse)
}

// Value returns the raw body, or the rendered list once the field has been
// changed.
func (f *AddressField) Value() string {
	if f.changed {
		return f.AddressList().String()
	}
	return f.raw
}

// Decoded returns the rendered list with group boundaries kept.
func (f *AddressField) Decoded() string {
	return f.AddressList().String()
}

// Encoded returns the folded field line. Each top-level entry of the list goes
// on its own line. A long mailbox may be folded inside; a group never is.
func (f *AddressField) Encoded() string {
	return f.foldUnits(func() []field.Unit {
		l := f.AddressList()
		units := make([]field.Unit, len(l))
		for i, e := range l {
			_, group := e.(*address.Group)
			units[i] = field.Unit{Text: e.Encoded(f.reg.charset), Atomic: group}
		}
		return units
	})
}

// Addresses returns the bare address of every mailbox, group members
// included.
func (f *AddressField) Addresses() []string {
	return f.AddressList().Addresses()
}

// Formatted returns the rendered form of each entry of the list.
func (f *AddressField) Formatted() []string {
	return f.AddressList().Formatted()
}

// DisplayNames returns the display name of every mailbox that has one.
func (f *AddressField) DisplayNames() []string {
	return f.AddressList().DisplayNames()
}

// GroupNames returns the name of every group.
func (f *AddressField) GroupNames() []string {
	return f.AddressList().GroupNames()
}

// Addrs returns every mailbox, group members included.
func (f *AddressField) Addrs() []*address.Address {
	return f.AddressList().Mailboxes()
}

// AddAddress parses s as an address list and appends its entries. The
// existing parse is kept; only the cached encoded line is dropped.
func (f *AddressField) AddAddress(s string) {
	l := append(slices.Clone(f.AddressList()), address.Parse(s)...)
	f.list.set(l)
	f.changed = true
	f.encoded.invalidate()
}

// SuppressedField is an address field that is left out of output unless asked
// for, as Bcc is.
type SuppressedField struct {
	*AddressField
}

var _ Field = (*SuppressedField)(nil)

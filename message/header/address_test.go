package header_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailfield/message/header"
	"github.com/zostay/go-mailfield/message/header/address"
)

func TestAddressField_Group(t *testing.T) {
	t.Parallel()

	f := header.NewTo("sam@me.com, my_group: mikel@me.com, bob@you.com;")
	assert.Equal(t, "To", f.Name())
	assert.Equal(t, "sam@me.com, my_group: mikel@me.com, bob@you.com;", f.Value())
	assert.Equal(t, "sam@me.com, my_group: mikel@me.com, bob@you.com;", f.Decoded())
	assert.Equal(t, "To: sam@me.com, \r\n my_group: mikel@me.com, bob@you.com;\r\n", f.Encoded())
	assert.Equal(t, []string{"sam@me.com", "mikel@me.com", "bob@you.com"}, f.Addresses())
	assert.Equal(t, []string{"my_group"}, f.GroupNames())
	assert.Equal(t, []string{"sam@me.com", "my_group: mikel@me.com, bob@you.com;"}, f.Formatted())
}

func TestAddressField_CommaInDisplayName(t *testing.T) {
	t.Parallel()

	f := header.NewTo(`"Long, stupid email address" <mikel@test.lindsaar.net>, "Another, really, really, long, stupid email address" <bob@test.lindsaar.net>`)
	assert.Equal(t, []string{"mikel@test.lindsaar.net", "bob@test.lindsaar.net"}, f.Addresses())
	assert.Equal(t, []string{"Long, stupid email address", "Another, really, really, long, stupid email address"}, f.DisplayNames())
}

func TestAddressField_Unicode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		encoded string
	}{
		{
			name:    "jp local part",
			in:      "Mikel Lindsár <マイケル@test.lindsaar.net>",
			encoded: "To: =?UTF-8?B?TWlrZWwgTGluZHPDoXI=?= <=?UTF-8?B?44Oe44Kk44Kx44Or?=@test.lindsaar.net>\r\n",
		},
		{
			name:    "quoted display name",
			in:      `"Mikel Lindsár" <lindsär@test.com>`,
			encoded: "To: =?UTF-8?B?TWlrZWwgTGluZHPDoXI=?= <=?UTF-8?B?bGluZHPDpHI=?=@test.com>\r\n",
		},
		{
			name:    "bare local",
			in:      "ölsen@ms.com",
			encoded: "To: =?UTF-8?B?w7Zsc2Vu?=@ms.com\r\n",
		},
		{
			name:    "quoted local",
			in:      `<"mik@test.<æ>"@ms.com>`,
			encoded: "To: =?UTF-8?B?Im1pa0B0ZXN0LjzDpj4i?=@ms.com\r\n",
		},
		{
			name:    "emoji",
			in:      "😍@me.eu",
			encoded: "To: =?UTF-8?B?8J+YjQ==?=@me.eu\r\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := header.NewTo(tt.in)
			assert.Equal(t, tt.encoded, f.Encoded())
		})
	}

	f := header.NewTo("Mikel Lindsár <マイケル@test.lindsaar.net>")
	assert.Equal(t, []string{"Mikel Lindsár"}, f.DisplayNames())
	assert.Equal(t, []string{"マイケル@test.lindsaar.net"}, f.Addresses())
	require.Len(t, f.Addrs(), 1)
	assert.Equal(t, "マイケル", f.Addrs()[0].Local)
}

func TestAddressField_Undisclosed(t *testing.T) {
	t.Parallel()

	f := header.NewTo(`<"Undisclosed-Recipient:"@msr19.hinet.net;>`)
	assert.Equal(t, "To: <\"Undisclosed-Recipient:\"@msr19.hinet.net;>\r\n", f.Encoded())
}

func TestAddressField_AddAddress(t *testing.T) {
	t.Parallel()

	f := header.NewTo("sam@me.com")
	assert.Equal(t, "To: sam@me.com\r\n", f.Encoded())

	f.AddAddress("Bob <bob@you.com>")
	assert.Equal(t, "sam@me.com, Bob <bob@you.com>", f.Value())
	assert.Equal(t, []string{"sam@me.com", "bob@you.com"}, f.Addresses())
	assert.Equal(t, "To: sam@me.com, \r\n Bob <bob@you.com>\r\n", f.Encoded())
}

func TestAddressField_AddrList(t *testing.T) {
	t.Parallel()

	f := header.NewFrom("Sam <sam@me.com>, team: bob@you.com;")
	al := f.AddressList().AddrList()
	require.Len(t, al, 2)
	assert.Equal(t, "sam@me.com", al[0].Address())
	assert.Equal(t, "bob@you.com", al[1].Address())
}

func TestSuppressedField(t *testing.T) {
	t.Parallel()

	f := header.NewBcc("sam@me.com")
	assert.Equal(t, "Bcc", f.Name())
	assert.False(t, f.IncludeInOutput())
	assert.Equal(t, "", f.Encoded())
	assert.Equal(t, "sam@me.com", f.Decoded())

	f.SetIncludeInOutput(true)
	assert.Equal(t, "Bcc: sam@me.com\r\n", f.Encoded())

	g := header.NewResentBcc("sam@me.com, my_group: mikel@me.com, bob@you.com;")
	g.SetIncludeInOutput(true)
	assert.Equal(t, "Resent-Bcc: sam@me.com, \r\n my_group: mikel@me.com, bob@you.com;\r\n", g.Encoded())
}

func TestAddressField_FoldsLongMailbox(t *testing.T) {
	t.Parallel()

	name := strings.TrimSpace(strings.Repeat("Very Long Display Name ", 6))
	f := header.NewTo(`"` + name + `" <someone.with.a.long.address@example.com>`)
	enc := f.Encoded()

	lines := strings.Split(strings.TrimSuffix(enc, "\r\n"), "\r\n")
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 78, line)
	}
	assert.NotContains(t, enc, "  ")

	body := strings.ReplaceAll(strings.TrimSuffix(strings.TrimPrefix(enc, "To: "), "\r\n"), "\r\n ", " ")
	g := header.NewTo(body)
	assert.Equal(t, []string{name}, g.DisplayNames())
	assert.Equal(t, []string{"someone.with.a.long.address@example.com"}, g.Addresses())
}

func TestAddressField_EncodedLiteral(t *testing.T) {
	t.Parallel()

	f := header.NewTo("マイケル <bad")
	assert.Equal(t, "To: =?UTF-8?B?44Oe44Kk44Kx44Or?= <bad\r\n", f.Encoded())
}

func TestAddressField_AddAddressKeepsCallerList(t *testing.T) {
	t.Parallel()

	f := header.NewTo("a@b.example, c@d.example, e@f.example")
	held := f.AddressList()
	f.AddAddress("g@h.example")

	_ = append(held, address.Parse("x@y.example")...)
	assert.Equal(t, []string{"a@b.example", "c@d.example", "e@f.example", "g@h.example"}, f.Addresses())
	assert.Len(t, held, 3)
}

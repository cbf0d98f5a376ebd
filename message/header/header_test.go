package header_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailfield/message/header"
	"github.com/zostay/go-mailfield/message/header/field"
)

const testHeader = "From: Mikel <mikel@test.lindsaar.net>\r\n" +
	"To: sam@me.com,\r\n bob@you.com\r\n" +
	"Bcc: hidden@them.com\r\n" +
	"Subject: =?UTF-8?B?TWlrZWwgTGluZHPDoXI=?=\r\n" +
	"Date: 12 Aug 2009 00:00:02 GMT\r\n" +
	"Received: by x.example; Tue, 10 May 2005 17:26:50 +0000\r\n" +
	"Received: by y.example; Tue, 10 May 2005 17:26:49 +0000\r\n"

func TestParse(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte(testHeader), header.CRLF, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, h.Len())

	f, err := h.Get("to")
	require.NoError(t, err)
	require.IsType(t, &header.AddressField{}, f)
	assert.Equal(t, []string{"sam@me.com", "bob@you.com"}, f.(*header.AddressField).Addresses())

	f, err = h.Get("Subject")
	require.NoError(t, err)
	assert.Equal(t, "Mikel Lindsár", f.Decoded())

	f, err = h.Get("Date")
	require.NoError(t, err)
	assert.Equal(t, "Wed, 12 Aug 2009 00:00:02 +0000", f.Value())

	assert.Len(t, h.GetAll("received"), 2)

	_, err = h.Get("Received")
	assert.ErrorIs(t, err, header.ErrManyFields)

	_, err = h.Get("Cc")
	assert.ErrorIs(t, err, header.ErrNoSuchField)
}

func TestHeader_WriteTo(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte(testHeader), header.CRLF, nil)
	require.NoError(t, err)

	expect := "From: Mikel <mikel@test.lindsaar.net>\r\n" +
		"To: sam@me.com, \r\n bob@you.com\r\n" +
		"Subject: Mikel =?UTF-8?B?TGluZHPDoXI=?=\r\n" +
		"Date: Wed, 12 Aug 2009 00:00:02 +0000\r\n" +
		"Received: by x.example; Tue, 10 May 2005 17:26:50 +0000\r\n" +
		"Received: by y.example; Tue, 10 May 2005 17:26:49 +0000\r\n"

	buf := &bytes.Buffer{}
	n, err := h.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(expect)), n)
	assert.Equal(t, expect, buf.String())
	assert.Equal(t, expect, h.String())
}

func TestParse_LF(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("subject: a\nto: b@c.example\n"), header.LF, nil)
	require.NoError(t, err)
	assert.Equal(t, header.LF, h.Registry().Break())
	assert.Equal(t, "Subject: a\nTo: b@c.example\n", h.String())
}

func TestParse_BadStart(t *testing.T) {
	t.Parallel()

	h, err := header.Parse([]byte("junk\r\n continued\r\nSubject: x\r\n"), header.CRLF, nil)

	var bsErr *field.BadStartError
	require.ErrorAs(t, err, &bsErr)
	assert.Equal(t, []byte("junk\r\n continued\r\n"), bsErr.BadStart)

	require.NotNil(t, h)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "Subject: x\r\n", h.String())
}

func TestHeader_Add(t *testing.T) {
	t.Parallel()

	h := header.New(nil)
	h.Add("subject", "hello")
	h.Add("cc", "a@b.example")
	h.AddField(header.NewReceived("by z.example; Tue, 10 May 2005 17:26:50 +0000"))

	require.Len(t, h.Fields(), 3)
	assert.Equal(t, "Subject: hello\r\nCc: a@b.example\r\nReceived: by z.example; Tue, 10 May 2005 17:26:50 +0000\r\n", h.String())
}

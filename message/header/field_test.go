package header_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailfield/message/header"
	"github.com/zostay/go-mailfield/message/header/field"
)

func TestUnstructuredField(t *testing.T) {
	t.Parallel()

	f := header.NewUnstructured("subject", "=?UTF-8?B?TWlrZWwgTGluZHPDoXI=?=")
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "=?UTF-8?B?TWlrZWwgTGluZHPDoXI=?=", f.Value())
	assert.Equal(t, "Mikel Lindsár", f.Decoded())
	assert.Equal(t, "Subject: Mikel =?UTF-8?B?TGluZHPDoXI=?=\r\n", f.Encoded())
}

func TestUnstructuredField_Plain(t *testing.T) {
	t.Parallel()

	f := header.NewUnstructured("X-Mailer", "  some mailer 1.0 ")
	assert.Equal(t, "some mailer 1.0", f.Value())
	assert.Equal(t, "some mailer 1.0", f.Decoded())
	assert.Equal(t, "X-Mailer: some mailer 1.0\r\n", f.Encoded())

	f.SetIncludeInOutput(false)
	assert.Equal(t, "", f.Encoded())
}

func TestUnstructuredField_Malformed(t *testing.T) {
	t.Parallel()

	f := header.NewUnstructured("Subject", "=?UTF-8?B?!!!?=")
	assert.Equal(t, "=?UTF-8?B?!!!?=", f.Decoded())
}

// reparse reads an encoded field line back and returns the decoded body.
func reparse(t *testing.T, line, name string) string {
	t.Helper()

	h, err := header.Parse([]byte(line), header.CRLF, nil)
	require.NoError(t, err)
	f, err := h.Get(name)
	require.NoError(t, err)
	return f.Decoded()
}

func TestUnstructuredField_LongText(t *testing.T) {
	t.Parallel()

	text := strings.TrimSpace(strings.Repeat("日本語のテキスト ", 40))
	out := header.NewUnstructured("Subject", text).Encoded()

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	assert.Greater(t, len(lines), 1)
	assert.LessOrEqual(t, len(lines[0]), len("Subject: ")+field.MaxWordLength)
	for _, line := range lines[1:] {
		assert.LessOrEqual(t, len(line), 78, line)
	}

	assert.Equal(t, text, reparse(t, out, "Subject"))
}

func TestUnstructuredField_KeepsWhitespace(t *testing.T) {
	t.Parallel()

	text := "Grüße\taus  Berlin"
	out := header.NewUnstructured("Subject", text).Encoded()
	assert.Equal(t, "Subject: =?UTF-8?B?R3LDvMOfZQ==?=\taus  Berlin\r\n", out)
	assert.Equal(t, text, reparse(t, out, "Subject"))
}

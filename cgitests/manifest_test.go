package cgitests

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
cases:
  - name: greeting
    method: GET
    query:
      param: 123
    expect:
      status: 200
      headers:
        content-type: text/plain
      content: "hello\n"
  - name: upload
    method: POST
    data: "raw payload"
    mime: application/json
    expect:
      status: 201
`)
	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, m.Cases, 2)

	greeting := m.Cases[0]
	assert.Equal(t, "greeting", greeting.Name)
	assert.False(t, greeting.IsPost())
	assert.Equal(t, url.Values{"param": {"123"}}, greeting.queryValues())
	require.NotNil(t, greeting.Expect.Status)
	assert.Equal(t, 200, *greeting.Expect.Status)
	assert.Equal(t, StringList{"text/plain"}, greeting.Expect.Headers["content-type"])
	require.NotNil(t, greeting.Expect.Content)
	assert.Equal(t, "hello\n", *greeting.Expect.Content)

	upload := m.Cases[1]
	assert.True(t, upload.IsPost())
	assert.Equal(t, "raw payload", upload.Data)
	assert.Equal(t, "application/json", upload.MIME)
	assert.Nil(t, upload.Expect.Content, "absent content must not be checked")
}

func TestLoadManifestListValues(t *testing.T) {
	path := writeManifest(t, `
cases:
  - name: cookies
    query:
      param: [first, second]
    expect:
      headers:
        set-cookie: [name=cookie1, name=cookie2]
`)
	m, err := LoadManifest(path)
	require.NoError(t, err)

	c := m.Cases[0]
	assert.Equal(t, url.Values{"param": {"first", "second"}}, c.queryValues())
	assert.Equal(t, StringList{"name=cookie1", "name=cookie2"}, c.Expect.Headers["set-cookie"])
}

func TestLoadManifestFormCase(t *testing.T) {
	path := writeManifest(t, `
cases:
  - name: form
    method: POST
    form:
      param: 123
`)
	m, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, url.Values{"param": {"123"}}, m.Cases[0].formValues())
}

func TestLoadManifestRejectsUnnamedCase(t *testing.T) {
	path := writeManifest(t, `
cases:
  - method: GET
`)
	_, err := LoadManifest(path)
	assert.ErrorContains(t, err, "has no name")
}

func TestLoadManifestRejectsDuplicateNames(t *testing.T) {
	path := writeManifest(t, `
cases:
  - name: same
  - name: same
`)
	_, err := LoadManifest(path)
	assert.ErrorContains(t, err, "duplicate case name")
}

func TestLoadManifestRejectsGetWithBody(t *testing.T) {
	path := writeManifest(t, `
cases:
  - name: bad
    method: GET
    data: "payload"
`)
	_, err := LoadManifest(path)
	assert.ErrorContains(t, err, "GET cannot have a body")
}

func TestLoadManifestRejectsDataAndForm(t *testing.T) {
	path := writeManifest(t, `
cases:
  - name: bad
    method: POST
    data: "payload"
    form:
      param: 123
`)
	_, err := LoadManifest(path)
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestLoadManifestRejectsFormWithMIME(t *testing.T) {
	path := writeManifest(t, `
cases:
  - name: bad
    method: POST
    form:
      param: 123
    mime: text/plain
`)
	_, err := LoadManifest(path)
	assert.ErrorContains(t, err, "mime cannot be set")
}

func TestLoadManifestRejectsUnsupportedMethod(t *testing.T) {
	path := writeManifest(t, `
cases:
  - name: bad
    method: DELETE
`)
	_, err := LoadManifest(path)
	assert.ErrorContains(t, err, "unsupported method")
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadManifestMalformedYAML(t *testing.T) {
	path := writeManifest(t, "cases: [unclosed")
	_, err := LoadManifest(path)
	assert.ErrorContains(t, err, "parsing manifest")
}

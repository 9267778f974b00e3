package cgitests

import (
	"github.com/cgikit/cgi-contract-tests/cgiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoManifestTests runs every case declared in the run's manifest file as a
// subtest against the target.
func DoManifestTests(t *T) {
	manifest := t.env.config.Manifest
	if manifest == nil || len(manifest.Cases) == 0 {
		t.context.SkipWithReason("no manifest cases declared")
	}
	for _, c := range manifest.Cases {
		c := c
		t.Run(c.Name, func(t *T) {
			runManifestCase(t, c)
		})
	}
}

func runManifestCase(t *T, c Case) {
	client := t.NewClient()

	var resp *cgiclient.Response
	var err error
	if c.IsPost() {
		body := cgiclient.Text(c.Data, c.MIME)
		if len(c.Form) > 0 {
			body = cgiclient.Form(c.formValues())
		}
		t.Debug("POST %s body=%d bytes mime=%s", t.Target(), len(body.Data()), body.MIMEType())
		resp, err = client.Post(body)
	} else {
		t.Debug("GET %s query=%v", t.Target(), c.queryValues())
		resp, err = client.Get(c.queryValues())
	}
	require.NoError(t, err, "request failed")
	require.NotNil(t, resp)
	if resp.Stderr != "" {
		t.Debug("target stderr: %s", resp.Stderr)
	}

	if c.Expect.Status != nil {
		require.True(t, resp.Status.IsDefined(), "response carried no status line")
		assert.Equal(t, *c.Expect.Status, resp.Status.IntValue())
	}
	for name, want := range c.Expect.Headers {
		require.True(t, resp.Headers.Has(name), "expected header %q is missing", name)
		if len(want) > 1 {
			assert.Equal(t, []string(want), resp.Headers.Values(name), "header %q", name)
		} else {
			assert.Equal(t, want[0], resp.Headers.Get(name), "header %q", name)
		}
	}
	if c.Expect.Content != nil {
		assert.Equal(t, *c.Expect.Content, string(resp.Content))
	}
}

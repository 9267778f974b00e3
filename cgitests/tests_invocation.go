package cgitests

import (
	"net/url"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoInvocationTests checks behavior that any well-behaved CGI target must
// satisfy, without assuming anything about what the target's responses
// contain.
func DoInvocationTests(t *T) {
	t.Run("GET with no parameters yields a decodable response", func(t *T) {
		client := t.NewClient()
		resp, err := client.Get(nil)
		require.NoError(t, err, "GET failed against %q", t.Target())
		require.NotNil(t, resp)
		t.Debug("decoded status=%v headers=%v content=%d bytes",
			resp.Status, resp.Headers, len(resp.Content))
	})

	t.Run("GET with query parameters yields a decodable response", func(t *T) {
		client := t.NewClient()
		resp, err := client.Get(url.Values{"param": {"123"}})
		require.NoError(t, err, "GET failed against %q", t.Target())
		require.NotNil(t, resp)
	})

	t.Run("each call fully replaces the previous result", func(t *T) {
		client := t.NewClient()
		first, err := client.Get(nil)
		require.NoError(t, err)
		second, err := client.Get(url.Values{"param": {"123"}})
		require.NoError(t, err)
		assert.Same(t, second, client.Response(),
			"client state should hold the most recent result")
		assert.NotSame(t, first, client.Response(),
			"client state should not retain an earlier result")
	})

	t.Run("header names are stored case-folded", func(t *T) {
		client := t.NewClient()
		resp, err := client.Get(nil)
		require.NoError(t, err)
		for name := range resp.Headers {
			assert.Equal(t, strings.ToLower(name), name, "header name %q is not lower-cased", name)
		}
	})
}

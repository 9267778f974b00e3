package cgitests

import (
	"net/http"
	"net/http/cgi"
	"net/url"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cgikit/cgi-contract-tests/cgiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shell scripts the suite provisions for itself. These do not depend on the
// target under test; they exist to verify the invocation machinery with
// known behavior on both the local and the remote path.
const (
	envEchoScript = `#!/bin/sh
printf 'HTTP/1.1 200 OK\n'
printf 'Content-Type: text/plain\n'
printf '\n'
printf 'method=%s;query=%s;type=%s;length=%s;stdin=' \
    "$REQUEST_METHOD" "$QUERY_STRING" "$CONTENT_TYPE" "$CONTENT_LENGTH"
cat
`
	cookieScript = `#!/bin/sh
printf 'HTTP/1.1 200 OK\n'
printf 'Set-Cookie: name=cookie1\n'
printf 'Set-Cookie: name=cookie2\n'
printf '\n'
`
	stderrScript = `#!/bin/sh
printf 'Content-Type: text/plain\n\nok'
printf 'diagnostic output' >&2
`
	failingScript = `#!/bin/sh
printf 'Content-Type: text/plain\n\npartial result'
printf 'something went wrong' >&2
exit 3
`
	parityScript = `#!/bin/sh
printf 'HTTP/1.1 200 OK\n'
printf 'Content-Type: text/plain\n'
printf 'X-Query: %s\n' "$QUERY_STRING"
printf '\n'
printf 'hello from cgi'
`
	serveableScript = `#!/bin/sh
printf 'Content-Type: text/plain\n'
printf 'X-Query: %s\n' "$QUERY_STRING"
printf '\n'
printf 'hello from cgi'
`
)

// DoFixtureScriptTests runs the invocation machinery against scripts the
// suite provisions for itself, so it can assert on exact responses.
func DoFixtureScriptTests(t *T) {
	if runtime.GOOS == "windows" {
		t.context.SkipWithReason("fixture scripts require a POSIX shell")
	}

	t.Run("GET passes the query through QUERY_STRING", func(t *T) {
		withScript(t, envEchoScript, func(script string) {
			client := cgiclient.NewLocalClient(script)
			resp, err := client.Get(url.Values{"param": {"123"}})
			require.NoError(t, err)
			assert.Equal(t, 200, resp.Status.IntValue())
			assert.Equal(t, "text/plain", resp.Headers.Get("Content-Type"))
			assert.Equal(t, "method=GET;query=param=123;type=;length=;stdin=", string(resp.Content))
			assert.Equal(t, "param=123", client.Env()["QUERY_STRING"])
		})
	})

	t.Run("form POST sets CONTENT_TYPE and CONTENT_LENGTH", func(t *T) {
		withScript(t, envEchoScript, func(script string) {
			client := cgiclient.NewLocalClient(script)
			resp, err := client.Post(cgiclient.Form(url.Values{"param": {"123"}}))
			require.NoError(t, err)
			assert.Equal(t,
				"method=POST;query=;type=application/x-www-form-urlencoded;length=9;stdin=param=123",
				string(resp.Content))
		})
	})

	t.Run("repeated headers decode to an ordered list", func(t *T) {
		withScript(t, cookieScript, func(script string) {
			resp, err := cgiclient.NewLocalClient(script).Get(nil)
			require.NoError(t, err)
			require.True(t, resp.Headers.Has("set-cookie"))
			assert.Equal(t, []string{"name=cookie1", "name=cookie2"}, resp.Headers.Values("Set-Cookie"))
		})
	})

	t.Run("stderr is captured even on success", func(t *T) {
		withScript(t, stderrScript, func(script string) {
			resp, err := cgiclient.NewLocalClient(script).Get(nil)
			require.NoError(t, err)
			assert.Equal(t, "ok", string(resp.Content))
			assert.Equal(t, "diagnostic output", resp.Stderr)
		})
	})

	t.Run("non-zero exit is surfaced but output is still decoded", func(t *T) {
		withScript(t, failingScript, func(script string) {
			resp, err := cgiclient.NewLocalClient(script).Get(nil)
			var exitErr *cgiclient.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 3, exitErr.ExitCode)
			assert.Equal(t, "something went wrong", exitErr.Stderr)
			require.NotNil(t, resp, "diagnostic response should still be available")
			assert.Equal(t, "partial result", string(resp.Content))
		})
	})

	t.Run("local and remote backends agree", func(t *T) {
		harness := t.Harness()
		endpoint := harness.NewEndpoint(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.Header().Set("X-Query", r.URL.RawQuery)
			_, _ = w.Write([]byte("hello from cgi"))
		}), t.DebugLogger())
		defer endpoint.Close()

		withScript(t, parityScript, func(script string) {
			query := url.Values{"param": {"123"}}
			local, err := cgiclient.NewLocalClient(script).Get(query)
			require.NoError(t, err)
			remote, err := cgiclient.NewRemoteClient(endpoint.BaseURL()).Get(query)
			require.NoError(t, err)

			assert.Equal(t, local.Status.IntValue(), remote.Status.IntValue())
			for name := range local.Headers {
				assert.Equal(t, local.Headers.Values(name), remote.Headers.Values(name),
					"header %q differs between backends", name)
			}
			assert.Equal(t, string(local.Content), string(remote.Content))
		})
	})

	t.Run("a local script can be served over HTTP", func(t *T) {
		harness := t.Harness()
		withScript(t, serveableScript, func(script string) {
			endpoint := harness.NewEndpoint(&cgi.Handler{Path: script}, t.DebugLogger())
			defer endpoint.Close()

			resp, err := cgiclient.NewRemoteClient(endpoint.BaseURL()).Get(url.Values{"param": {"123"}})
			require.NoError(t, err)
			assert.Equal(t, 200, resp.Status.IntValue())
			assert.Equal(t, "param=123", resp.Headers.Get("X-Query"))
			assert.Equal(t, "hello from cgi", string(resp.Content))
		})
	})
}

// withScript writes a fixture script to a temporary file, makes it
// executable, and removes it when the action returns.
func withScript(t *T, source string, action func(path string)) {
	dir, err := os.MkdirTemp("", "cgi-fixture-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "fixture.cgi")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o755))
	action(path)
}

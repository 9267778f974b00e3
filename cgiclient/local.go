package cgiclient

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"sort"

	"github.com/google/shlex"
)

// CGI environment variable names set for local invocations.
const (
	envRequestMethod = "REQUEST_METHOD"
	envQueryString   = "QUERY_STRING"
	envContentLength = "CONTENT_LENGTH"
	envContentType   = "CONTENT_TYPE"
)

// LocalClient invokes a script as a child process under a simulated CGI
// environment and decodes its stdout as an HTTP-style response.
//
// The target is interpreted as a shell-style command line: it is split into
// a program and arguments with shell lexing rules (quoting respected) and
// executed directly, never through a shell. The process environment is
// replaced by exactly the CGI variables for the call, so a script never
// sees the caller's ambient environment variables.
type LocalClient struct {
	target string
	last   *Response
	env    map[string]string
}

// NewLocalClient creates a client that runs the given command line as a
// child process for each call.
func NewLocalClient(target string) *LocalClient {
	return &LocalClient{target: target}
}

// Target returns the command line the client was constructed with.
func (c *LocalClient) Target() string { return c.target }

// Response returns the result of the most recent call, or nil.
func (c *LocalClient) Response() *Response { return c.last }

// Env returns the CGI environment variables built for the most recent call.
// It is diagnostic state only; the environment is rebuilt from scratch for
// every call.
func (c *LocalClient) Env() map[string]string {
	env := make(map[string]string, len(c.env))
	for k, v := range c.env {
		env[k] = v
	}
	return env
}

// Get executes a GET request: REQUEST_METHOD=GET, QUERY_STRING set to the
// form-encoded query, empty standard input.
func (c *LocalClient) Get(query url.Values) (*Response, error) {
	env := map[string]string{
		envRequestMethod: "GET",
		envQueryString:   query.Encode(),
	}
	return c.invoke(env, nil)
}

// Post executes a POST request: REQUEST_METHOD=POST, CONTENT_LENGTH set to
// the byte length of the body, CONTENT_TYPE set to the body's MIME type,
// and the body supplied on the process's standard input.
func (c *LocalClient) Post(body Body) (*Response, error) {
	env := map[string]string{
		envRequestMethod: "POST",
		envContentLength: fmt.Sprintf("%d", len(body.Data())),
		envContentType:   body.MIMEType(),
	}
	return c.invoke(env, body.Data())
}

func (c *LocalClient) invoke(env map[string]string, stdin []byte) (*Response, error) {
	c.env = env
	c.last = nil

	argv, err := shlex.Split(c.target)
	if err != nil {
		return nil, &InvocationError{Target: c.target, Err: err}
	}
	if len(argv) == 0 {
		return nil, &InvocationError{Target: c.target, Err: errors.New("empty command line")}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = envStrings(env)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		// The process never started (command not found, not executable).
		return nil, &InvocationError{Target: c.target, Err: runErr}
	}

	resp, decodeErr := DecodeResponse(stdout.Bytes())
	if resp != nil {
		resp.Stderr = stderr.String()
		c.last = resp
	}
	if exitErr != nil {
		// The exit signal takes precedence over any decode problem, but a
		// successfully decoded response is still returned for diagnostics.
		return resp, &ExitError{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return resp, nil
}

func envStrings(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vars := make([]string, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, k+"="+env[k])
	}
	return vars
}

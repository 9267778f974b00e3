package cgitests

import (
	"github.com/cgikit/cgi-contract-tests/cgiclient"
	"github.com/cgikit/cgi-contract-tests/framework"

	"github.com/stretchr/testify/require"
)

// SuiteConfig is everything the suite needs to know about one test run.
type SuiteConfig struct {
	// Target is the CGI program under test: a command line for local
	// execution, or an http/https URL.
	Target string

	// Manifest holds user-declared test cases, if a manifest file was
	// given.
	Manifest *Manifest

	// Harness hosts mock HTTP endpoints for the fixture-based tests. If
	// nil, tests that need it are skipped.
	Harness *framework.Harness
}

// T represents a test or subtest in the CGI test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner. To make test
// assertions, use the assert and require packages, passing the *T as if it
// were a *testing.T.
type T struct {
	context *framework.Context
	env     *environment
}

type environment struct {
	config SuiteConfig
}

func newTestScope(context *framework.Context, env *environment) *T {
	return &T{context: context, env: env}
}

// Target returns the invocation target for this test run.
func (t *T) Target() string {
	return t.env.config.Target
}

// Harness returns the mock endpoint harness, skipping the test if the run
// was configured without one.
func (t *T) Harness() *framework.Harness {
	if t.env.config.Harness == nil {
		t.context.SkipWithReason("no harness available for mock endpoints")
	}
	return t.env.config.Harness
}

// NewClient constructs a client for the run's target, selecting the local
// or remote backend from the target's scheme. A selection failure fails the
// test immediately.
func (t *T) NewClient() cgiclient.Client {
	c, err := cgiclient.New(t.env.config.Target)
	require.NoError(t, err, "could not construct a client for target %q", t.env.config.Target)
	return c
}

// RequireLocalTarget constructs a client for the run's target and skips the
// test unless the target selects the local backend.
func (t *T) RequireLocalTarget() *cgiclient.LocalClient {
	local, ok := t.NewClient().(*cgiclient.LocalClient)
	if !ok {
		t.context.SkipWithReason("test requires a local target")
	}
	return local
}

// Errorf is called by assertions to log a test failure. It does not cause
// an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Skip exits the test immediately without failing it.
func (t *T) Skip() {
	t.context.Skip()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to
// the test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// DebugLogger returns a logger writing to the test's debug output.
func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

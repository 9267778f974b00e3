package cgitests

import (
	"github.com/cgikit/cgi-contract-tests/framework"
)

// RunTestSuite runs the whole CGI test suite against the configured target
// and returns the accumulated results.
func RunTestSuite(
	config SuiteConfig,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, &environment{config: config})

		t.Run("invocation", DoInvocationTests)
		t.Run("fixture scripts", DoFixtureScriptTests)
		t.Run("manifest", DoManifestTests)
	})
}

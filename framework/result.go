package framework

import (
	"fmt"
	"io"
	"strings"
)

// TestID identifies a test or subtest as the path of Run names leading to it.
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// TestResult is the outcome of one test.
type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

// Results accumulates the outcomes of a whole test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// OK reports whether the run had no failures.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// PrintResults writes a summary of the run to dest.
func PrintResults(dest io.Writer, results Results) {
	if results.OK() {
		fmt.Fprintf(dest, "All tests passed (%d)\n", len(results.Tests))
		return
	}
	fmt.Fprintf(dest, "FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Fprintf(dest, "* %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(dest, "  - %s\n", line)
			}
		}
	}
}

package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is used like *testing.T in a test suite that runs outside the Go
// test runner. It implements the TestingT contract of the assert/require
// packages (Errorf, FailNow), supports subtests via Run, can skip tests,
// and captures per-test debug output for the test logger.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes a test suite entry point and returns the accumulated
// results. The filter, if non-nil, decides which subtests run.
func Run(filter Filter, testLogger TestLogger, action func(*Context)) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{filter: filter, testLogger: testLogger}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

// ID returns the full path name of the current test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest, equivalent to the Run method of testing.T.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c.env.testLogger.TestStarted(id)
	c1 := &Context{id: id, env: c.env}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf logs a test failure without stopping the test. Assertions from the
// assert package call this.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow marks the test failed and exits it immediately. Assertions from
// the require package call this.
func (c *Context) FailNow() {
	panic(c)
}

// Skip exits the test immediately without failing it.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

// SkipWithReason is Skip with an explanation for the test log.
func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug adds a message to the test's captured debug output.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to the test's captured debug
// output.
func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

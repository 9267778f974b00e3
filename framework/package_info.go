// Package framework contains the generic test harness infrastructure that
// the CGI test suite is built on: a test context similar to Go's testing.T
// that works outside the Go test runner, accumulation and reporting of
// results, regex-based test filtering, per-test debug log capture, and an
// HTTP harness for putting mock endpoints behind real URLs.
//
// Nothing in this package knows about CGI; the domain-specific logic lives
// in the cgitests package.
package framework

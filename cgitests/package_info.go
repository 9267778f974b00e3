// Package cgitests contains the CGI contract-test suite. It drives a target
// CGI program through the cgiclient package — as a local child process or
// through HTTP, depending on the target's scheme — and makes assertions
// about the decoded responses.
//
// The suite has two parts: built-in tests that check behavior every target
// must satisfy (a decodable response, result state replacement, client
// selection), plus fixture-based tests that provision their own scripts to
// verify local/remote parity; and manifest-driven tests declared by the
// user in a YAML file, each describing one request and the expected
// response.
package cgitests

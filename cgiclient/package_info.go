// Package cgiclient simulates invocation of a CGI-style program and decodes
// its output into a structured result.
//
// A program can be invoked in two interchangeable ways: as a local child
// process (LocalClient), where the CGI request is described to it through
// environment variables and standard input and its standard output is parsed
// as an HTTP-style response; or as a remote program behind an HTTP URL
// (RemoteClient), where the request travels as a normal HTTP GET or POST.
// Both clients expose the same Get/Post operations and produce the same
// Response shape, so test code can assert on a CGI program's behavior
// without caring which way it was reached.
//
// Use New to select the appropriate client for a target string based on its
// URL scheme, or construct NewLocalClient/NewRemoteClient directly.
package cgiclient

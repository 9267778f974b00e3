package cgiclient

import (
	"bytes"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is the decoded outcome of one Get or Post call.
type Response struct {
	// Status is the numeric HTTP status code. It is undefined when the
	// program's output carried no status line, which can happen for local
	// invocations only.
	Status ldvalue.OptionalInt

	// Headers holds the response headers with lower-cased names.
	Headers Headers

	// Content is everything after the header block terminator, verbatim.
	// It is raw bytes; no character decoding is applied.
	Content []byte

	// Stderr is the diagnostic output captured from the invoked process.
	// It is only set by LocalClient, and is captured even when the call
	// succeeds.
	Stderr string
}

// DecodeResponse parses the raw byte stream written by a CGI program into a
// Response. The accepted shape is: an optional status line beginning with
// "HTTP" (any case) whose second whitespace-separated token is the numeric
// status code, zero or more "Name: value" header lines, one empty line, and
// raw body bytes to end of stream.
//
// It is deliberately lenient about non-standard output: lines are trimmed of
// surrounding whitespace (so either LF or CRLF line endings work), header
// names are case-folded, a repeated header name accumulates an ordered list
// of values, and a stream with no empty line at all is treated as headers
// only with empty content. A header line with no colon, or a status line
// with a non-numeric code, is a DecodeError; no partial Response is
// returned in that case.
func DecodeResponse(raw []byte) (*Response, error) {
	var lines []string
	var content []byte
	rest := raw
	for len(rest) > 0 {
		var line string
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line = strings.TrimSpace(string(rest[:i]))
			rest = rest[i+1:]
		} else {
			line = strings.TrimSpace(string(rest))
			rest = nil
		}
		if line == "" {
			// End of header block; the rest is the body, untouched.
			content = rest
			break
		}
		lines = append(lines, line)
	}

	resp := &Response{Headers: Headers{}, Content: content}
	if len(lines) > 0 && strings.HasPrefix(strings.ToUpper(lines[0]), "HTTP") {
		fields := strings.Fields(lines[0])
		if len(fields) < 2 {
			return nil, &DecodeError{Line: lines[0], Reason: "status line has no status code"}
		}
		code, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &DecodeError{Line: lines[0], Reason: "status code is not an integer"}
		}
		resp.Status = ldvalue.NewOptionalInt(code)
		lines = lines[1:]
	}
	for _, line := range lines {
		name, value, found := strings.Cut(line, ":")
		if !found {
			return nil, &DecodeError{Line: line, Reason: "header line has no colon"}
		}
		resp.Headers.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return resp, nil
}

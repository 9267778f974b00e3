package cgiclient

import (
	"fmt"
)

// SchemeError is returned by New when the target has a non-empty scheme that
// is neither http nor https. It is a configuration error: no invocation was
// attempted.
type SchemeError struct {
	Target string
	Scheme string
}

func (e *SchemeError) Error() string {
	return fmt.Sprintf("unsupported scheme %q in target %q", e.Scheme, e.Target)
}

// InvocationError means the call could not be carried out at all: the local
// process could not be started, or the remote connection could not be
// established. No Response is produced.
type InvocationError struct {
	Target string
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoking %q: %s", e.Target, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ExitError means the local process ran but exited with a non-zero status.
// Whatever it wrote to stdout may still have been decoded; the accompanying
// Response, if any, is for diagnostics only.
type ExitError struct {
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("process exited with status %d", e.ExitCode)
	}
	return fmt.Sprintf("process exited with status %d: %s", e.ExitCode, e.Stderr)
}

// StatusError means the remote endpoint answered with a failure status
// (400 or above). The accompanying Response is still populated so callers
// can inspect the error body.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request returned HTTP status %d", e.StatusCode)
}

// DecodeError means the program's output did not match the expected
// HTTP-style response shape. No partial Response is produced.
type DecodeError struct {
	Line   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response line %q: %s", e.Line, e.Reason)
}

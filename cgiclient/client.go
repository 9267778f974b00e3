package cgiclient

import (
	"net/url"
)

// MIME types used when building POST request bodies.
const (
	DefaultMIMEType = "text/plain"
	FormMIMEType    = "application/x-www-form-urlencoded"
)

// Client is the capability set shared by LocalClient and RemoteClient. A
// client is bound to one invocation target for its whole lifetime; each call
// blocks until the child process exits or the HTTP round trip completes.
//
// A client instance keeps the result of its most recent call as mutable
// state (see Response), so instances must not be shared across concurrent
// calls. Concurrent Get/Post on the same instance has last-writer-wins
// results; there is no internal locking.
type Client interface {
	// Get performs a GET request with the given query parameters.
	Get(query url.Values) (*Response, error)

	// Post performs a POST request with the given body.
	Post(body Body) (*Response, error)

	// Response returns the result of the most recent call, or nil if no
	// call has completed. Each call fully replaces the previous result.
	Response() *Response

	// Target returns the invocation target the client was constructed with.
	Target() string
}

// Body is the payload of a POST request: either literal data with a MIME
// type, or a key/value mapping to be form-encoded.
type Body struct {
	data []byte
	mime string
}

// Raw creates a Body holding data verbatim. If mime is empty it defaults to
// text/plain.
func Raw(data []byte, mime string) Body {
	if mime == "" {
		mime = DefaultMIMEType
	}
	return Body{data: data, mime: mime}
}

// Text is shorthand for Raw with a string payload.
func Text(data string, mime string) Body {
	return Raw([]byte(data), mime)
}

// Form creates a Body by form-encoding the given mapping. The MIME type is
// always application/x-www-form-urlencoded; repeated keys are preserved as
// repeated pairs.
func Form(values url.Values) Body {
	return Body{data: []byte(values.Encode()), mime: FormMIMEType}
}

// Data returns the encoded body bytes.
func (b Body) Data() []byte { return b.data }

// MIMEType returns the resolved MIME type of the body.
func (b Body) MIMEType() string { return b.mime }

// New selects and constructs the client for a target string based on its
// URL scheme: no scheme means a local command line, http or https means a
// remote URL, and any other scheme is a SchemeError. The selection happens
// once; the returned client is bound to that backend for its lifetime.
func New(target string) (Client, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" {
		// Not parseable as a URL (e.g. a command line with arguments) or
		// no scheme at all: treat as a local script.
		return NewLocalClient(target), nil
	}
	switch u.Scheme {
	case "http", "https":
		return NewRemoteClient(target), nil
	default:
		return nil, &SchemeError{Target: target, Scheme: u.Scheme}
	}
}

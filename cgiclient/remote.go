package cgiclient

import (
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// RemoteClient performs the equivalent CGI call over HTTP against a URL. The
// response status and headers come from the transport layer rather than from
// parsing raw bytes, but the result has the same shape as a local call's, so
// the two clients are interchangeable.
type RemoteClient struct {
	target string
	http   *resty.Client
	last   *Response
}

// NewRemoteClient creates a client that issues HTTP requests to the given
// URL for each call. The client performs one connection per call and no
// retries; it does not enforce a timeout of its own.
func NewRemoteClient(target string) *RemoteClient {
	return &RemoteClient{target: target, http: resty.New()}
}

// Target returns the URL the client was constructed with.
func (c *RemoteClient) Target() string { return c.target }

// Response returns the result of the most recent call, or nil.
func (c *RemoteClient) Response() *Response { return c.last }

// Get issues an HTTP GET with the form-encoded query appended to the target
// URL as its query string.
func (c *RemoteClient) Get(query url.Values) (*Response, error) {
	resp, err := c.http.R().SetQueryParamsFromValues(query).Get(c.target)
	return c.result(resp, err)
}

// Post issues an HTTP POST with the body as the request payload and its MIME
// type as the Content-Type header.
func (c *RemoteClient) Post(body Body) (*Response, error) {
	resp, err := c.http.R().
		SetHeader("Content-Type", body.MIMEType()).
		SetBody(body.Data()).
		Post(c.target)
	return c.result(resp, err)
}

func (c *RemoteClient) result(resp *resty.Response, err error) (*Response, error) {
	c.last = nil
	if err != nil {
		return nil, &InvocationError{Target: c.target, Err: err}
	}
	result := &Response{
		Status:  ldvalue.NewOptionalInt(resp.StatusCode()),
		Headers: headersFrom(resp.Header()),
		Content: resp.Body(),
	}
	c.last = result
	if resp.IsError() {
		// The response is still available for inspecting the error body.
		return result, &StatusError{StatusCode: resp.StatusCode()}
	}
	return result, nil
}

// headersFrom copies transport headers into a Headers map, applying the same
// multi-value accumulation rule the response decoder uses. The transport may
// expose repeated headers as discrete values under one name; each value
// counts as one occurrence.
func headersFrom(src http.Header) Headers {
	h := Headers{}
	for name, values := range src {
		for _, value := range values {
			h.Add(name, value)
		}
	}
	return h
}

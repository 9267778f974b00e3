package framework

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const endpointPathPrefix = "/endpoints/"
const httpListenerTimeout = time.Second * 10

// Harness hosts mock HTTP endpoints on a single listener so that a test
// suite can put any http.Handler behind a real URL. Endpoints are created
// with NewEndpoint and live until closed; requests to unknown paths get a
// 404.
type Harness struct {
	externalBaseURL string
	endpoints       map[string]*Endpoint
	lastEndpointID  int
	logger          Logger
	lock            sync.Mutex
}

// Endpoint is one registered mock endpoint.
type Endpoint struct {
	owner   *Harness
	id      string
	handler http.Handler
	logger  Logger
}

// NewHarness starts an HTTP listener on the given port and waits until it is
// confirmed to be accepting requests. The external hostname is used when
// building endpoint base URLs, for environments where the address a peer
// must use differs from localhost.
func NewHarness(externalHostname string, port int, debugLogger Logger) (*Harness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	h := &Harness{
		externalBaseURL: fmt.Sprintf("http://%s:%d", externalHostname, port),
		endpoints:       make(map[string]*Endpoint),
		logger:          debugLogger,
	}
	if err := startServer(port, http.HandlerFunc(h.serveHTTP)); err != nil {
		return nil, err
	}
	return h, nil
}

// NewEndpoint registers a handler and returns the endpoint that routes to
// it. The handler is called for all requests to the endpoint's base URL or
// any subpath of it; the harness rewrites the request URL so the handler
// sees only the subpath.
func (h *Harness) NewEndpoint(handler http.Handler, logger Logger) *Endpoint {
	if logger == nil {
		logger = h.logger
	}
	h.lock.Lock()
	h.lastEndpointID++
	e := &Endpoint{
		owner:   h,
		id:      strconv.Itoa(h.lastEndpointID),
		handler: handler,
		logger:  logger,
	}
	h.endpoints[e.id] = e
	h.lock.Unlock()
	return e
}

// BaseURL returns the externally reachable URL of the endpoint.
func (e *Endpoint) BaseURL() string {
	return e.owner.externalBaseURL + endpointPathPrefix + e.id
}

// Close unregisters the endpoint; subsequent requests to it get a 404.
func (e *Endpoint) Close() {
	e.owner.lock.Lock()
	delete(e.owner.endpoints, e.id)
	e.owner.lock.Unlock()
}

func (h *Harness) serveHTTP(w http.ResponseWriter, req *http.Request) {
	if !strings.HasPrefix(req.URL.Path, endpointPathPrefix) {
		h.logger.Printf("Received request for unrecognized URL path %s", req.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	path := strings.TrimPrefix(req.URL.Path, endpointPathPrefix)
	endpointID := path
	if slashPos := strings.Index(path, "/"); slashPos >= 0 {
		endpointID = path[0:slashPos]
		path = path[slashPos:]
	} else {
		path = ""
	}

	h.lock.Lock()
	e := h.endpoints[endpointID]
	h.lock.Unlock()
	if e == nil {
		h.logger.Printf("Received request for unrecognized endpoint %s", req.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	e.logger.Printf("Incoming request: %s %s", req.Method, req.URL)
	url := *req.URL
	url.Path = path
	transformedReq := *req
	transformedReq.URL = &url
	e.handler.ServeHTTP(w, &transformedReq)
}

func startServer(port int, handler http.Handler) error {
	server := &http.Server{
		Addr: fmt.Sprintf(":%d", port),
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "HEAD" {
				w.WriteHeader(200)
				return
			}
			handler.ServeHTTP(w, r)
		}),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil {
			panic(err)
		}
	}()

	// Wait till the server is definitely listening for requests before we run any tests
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("could not detect own listener at %s", server.Addr)
		case <-ticker.C:
			resp, err := http.DefaultClient.Head(fmt.Sprintf("http://localhost:%d", port))
			if err == nil && resp.StatusCode == 200 {
				return nil
			}
		}
	}
}

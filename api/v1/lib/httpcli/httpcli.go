// Package httpcli implements the HTTP transport the scheduler client rides
// on: a Client that encodes a call with a configured Codec, POSTs it, and
// runs the raw *http.Response through a pluggable response handler.
package httpcli

import (
	"bytes"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"

	mesos "github.com/mesos/mesos-go/api/v1/lib"
	"github.com/mesos/mesos-go/api/v1/lib/encoding"
	"github.com/mesos/mesos-go/api/v1/lib/httpcli/apierrors"
)

// ProtocolError is returned when the client or a response-handling chain
// observes something that violates the HTTP Scheduler API's contract
// (e.g. an unexpected concrete Response type).
type ProtocolError string

func (e ProtocolError) Error() string { return string(e) }

// RequestOpt mutates an outgoing *http.Request before it is sent, e.g. to
// set a header.
type RequestOpt func(*http.Request)

// Header returns a RequestOpt that sets a single header value.
func Header(key, value string) RequestOpt {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// Opt mutates a Client.
type Opt func(*Client)

// Endpoint sets the Client's target URL.
func Endpoint(url string) Opt {
	return func(c *Client) { c.endpoint = url }
}

// Codec sets the Client's wire codec.
func Codec(codec encoding.Codec) Opt {
	return func(c *Client) { c.codec = codec }
}

// HTTPClient overrides the *http.Client a Client sends requests with.
func HTTPClient(hc *http.Client) Opt {
	return func(c *Client) { c.httpClient = hc }
}

// DefaultHeader adds a RequestOpt applied to every outgoing request.
func DefaultHeader(key, value string) Opt {
	return func(c *Client) { c.requestOpts = append(c.requestOpts, Header(key, value)) }
}

// DefaultRequestOpts appends arbitrary, already-built RequestOpts applied
// to every outgoing request, for callers (e.g. controller.Config's
// SubscribeReqOptions) that assemble RequestOpt values up front rather
// than one key/value pair at a time.
func DefaultRequestOpts(opts ...RequestOpt) Opt {
	return func(c *Client) { c.requestOpts = append(c.requestOpts, opts...) }
}

// HandleResponse replaces the Client's response handler with f. f is not
// handed the previous handler; a handler that wants the default
// classification calls DefaultResponseHandler itself and then transforms
// its result, as httpsched.redirectHandler does.
func HandleResponse(f func(*http.Response, error) (mesos.Response, error)) Opt {
	return func(c *Client) { c.handleResponse = f }
}

// Do sends m through http.Client.Do using the configured endpoint and codec,
// runs the raw response through the handler chain, and returns the result.
func (c *Client) Do(m encoding.Marshaler, opts ...RequestOpt) (mesos.Response, error) {
	var buf bytes.Buffer
	if err := c.codec.NewEncoder(&buf).Encode(m); err != nil {
		return nil, errors.Wrap(err, "httpcli: encode failed")
	}
	req, err := http.NewRequest("POST", c.endpoint, &buf)
	if err != nil {
		return nil, errors.Wrap(err, "httpcli: build request failed")
	}
	req.Header.Set("Content-Type", c.codec.Type)
	req.Header.Set("Accept", c.codec.Type)
	req.Header.Set("Connection", "close")
	for _, o := range c.requestOpts {
		o(req)
	}
	for _, o := range opts {
		o(req)
	}
	hres, herr := c.httpClient.Do(req)
	return c.HandleResponse(hres, herr)
}

// HandleResponse invokes the Client's currently-configured response
// handler, defaulting to DefaultResponseHandler.
func (c *Client) HandleResponse(hres *http.Response, err error) (mesos.Response, error) {
	if c.handleResponse != nil {
		return c.handleResponse(hres, err)
	}
	return DefaultResponseHandler(hres, err)
}

// Endpoint returns the Client's current target URL.
func (c *Client) Endpoint() string { return c.endpoint }

// With applies opts to the Client in order and returns it, so calls can be
// chained: cl.With(Endpoint(x), Codec(y)).
func (c *Client) With(opts ...Opt) *Client {
	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}
	return c
}

// WithTemporary applies opt, invokes f, then restores the Client's prior
// configuration regardless of f's outcome.
func (c *Client) WithTemporary(opt Opt, f func() error) error {
	if opt == nil {
		return f()
	}
	old := *c
	opt(c)
	defer func() { *c = old }()
	return f()
}

// Client is a minimal, reusable POST client for the Scheduler HTTP API.
// It is not safe for concurrent use; callers serialize access (the
// controller/session layer does this for the subscribe stream).
type Client struct {
	endpoint       string
	codec          encoding.Codec
	httpClient     *http.Client
	requestOpts    []RequestOpt
	handleResponse func(*http.Response, error) (mesos.Response, error)
}

// New returns a Client configured by opts. Unless an Opt overrides it, the
// Client sends with an http.Client that does not follow redirects, so a 307
// reaches the response handler.
func New(opts ...Opt) *Client {
	c := &Client{httpClient: &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}}
	return c.With(opts...)
}

// Response adapts an *http.Response to mesos.Response: reading pulls frame
// bytes off of the (possibly still-streaming) body, and Close releases the
// connection exactly once.
type Response struct {
	*http.Response
}

func (r *Response) Read(p []byte) (int, error) { return r.Body.Read(p) }
func (r *Response) Close() error                { return r.Body.Close() }

// DefaultResponseHandler classifies a raw *http.Response per the Scheduler
// HTTP API contract: 200 becomes a streamable Response (the SUBSCRIBE
// case), 202 becomes an empty-bodied Response (every other call's success
// case), 307/503 become apierrors.Error{Code: CodeNotLeader} (the
// httpsched Caller reacts to these to drive redirect/failover), and any
// other non-2xx status becomes an apierrors.Error carrying the drained
// response body.
func DefaultResponseHandler(hres *http.Response, err error) (mesos.Response, error) {
	if err != nil {
		return nil, err
	}
	switch {
	case hres.StatusCode == http.StatusOK, hres.StatusCode == http.StatusAccepted:
		return &Response{hres}, nil
	case hres.StatusCode == http.StatusTemporaryRedirect:
		location := hres.Header.Get("Location")
		hres.Body.Close()
		return nil, &apierrors.Error{Code: apierrors.CodeNotLeader, Status: hres.StatusCode, Location: location}
	case hres.StatusCode == http.StatusServiceUnavailable:
		hres.Body.Close()
		return nil, &apierrors.Error{Code: apierrors.CodeNotLeader, Status: hres.StatusCode}
	default:
		body, _ := ioutil.ReadAll(io.LimitReader(hres.Body, 1<<20))
		hres.Body.Close()
		return nil, &apierrors.Error{Code: apierrors.CodeUnexpected, Status: hres.StatusCode, Body: body}
	}
}

package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/clickatell/clickatell-go/diag"
	"github.com/clickatell/clickatell-go/strbuf"
)

// Client is the fasthttp-backed Executor. It owns one long-lived transport
// handle, the headers attached to every request, and the single response
// slot. Not safe for concurrent use.
type Client struct {
	engine   *Engine
	hc       *fasthttp.Client
	timeout  time.Duration
	headers  []Header
	response *strbuf.Buffer
	status   int
	result   Result
}

var _ Executor = (*Client)(nil)

// SetHeaders replaces the headers sent with every request.
func (c *Client) SetHeaders(headers []Header) {
	c.headers = headers
}

// Reset discards the captured response. Every gateway call starts here.
func (c *Client) Reset() {
	c.response = nil
}

// Response returns the response slot, or nil when the last request produced
// no body.
func (c *Client) Response() *strbuf.Buffer {
	return c.response
}

// Status returns the HTTP status code recorded by the last Execute.
func (c *Client) Status() int {
	return c.status
}

// Result returns the transport outcome recorded by the last Execute.
func (c *Client) Result() Result {
	return c.result
}

// Close releases the response slot and headers. The connection pool belongs
// to the engine and survives. Safe against a nil receiver.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.response = nil
	c.headers = nil
	return nil
}

// validTarget reports whether target is an absolute http(s) URL.
func validTarget(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Execute performs exactly one request. Input validation failures return
// before any network I/O with ResultInvalidInput recorded. Transport
// failures are recorded as a non-OK result and returned wrapped; the HTTP
// status is only meaningful when the result is ResultOK.
func (c *Client) Execute(ctx context.Context, target string, method Method, body []byte) error {
	if c == nil || c.hc == nil {
		diag.Errorf("transport: execute on invalid client")
		return ErrEngineClosed
	}
	c.status = 0
	if !c.engine.alive() {
		c.result = ResultInvalidInput
		diag.Errorf("transport: execute after engine shutdown")
		return ErrEngineClosed
	}
	if target == "" || !validTarget(target) {
		c.result = ResultInvalidInput
		diag.Errorf("transport: invalid URL %q", target)
		return ErrInvalidURL
	}
	if err := ctx.Err(); err != nil {
		c.result = ResultInvalidInput
		return err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	for _, h := range c.headers {
		req.Header.Set(h.Key, h.Value)
	}

	switch method {
	case MethodPost:
		req.Header.SetMethod(fasthttp.MethodPost)
		if len(body) > 0 {
			req.SetBody(body)
			req.Header.SetContentLength(len(body))
			diag.Printf("transport: post data:\n%s", body)
		}
	case MethodDelete:
		req.Header.SetMethod(fasthttp.MethodDelete)
	default:
		req.Header.SetMethod(fasthttp.MethodGet)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	err := c.hc.DoDeadline(req, resp, deadline)
	if err != nil {
		c.result = classify(err)
		diag.Errorf("transport: %s %s failed: %v (%s)", method, target, err, c.result)
		return fmt.Errorf("transport: %s %s: %w", method, target, err)
	}

	c.result = ResultOK
	c.status = resp.StatusCode()
	c.capture(resp)

	diag.Printf("transport: %s-request URL:\n%s", method, target)
	diag.Printf("transport: HTTP response code:\n%d", c.status)
	diag.Printf("transport: response:\n%s", c.response.String())
	return nil
}

// capture accumulates the response body into the single response slot. A
// stale response still present here means the caller skipped Reset; it is
// discarded with a warning. A zero-length body is a legitimate terminal
// state, not an error.
func (c *Client) capture(resp *fasthttp.Response) {
	w := &captureWriter{client: c}
	if err := resp.BodyWriteTo(w); err != nil {
		diag.Errorf("transport: failed to capture response body: %v", err)
	}
}

type captureWriter struct {
	client  *Client
	started bool
}

func (w *captureWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !w.started {
		w.started = true
		if w.client.response != nil {
			diag.Warnf("transport: discarding stale response that should have been reset")
			w.client.response = nil
		}
	}
	if w.client.response == nil {
		b, err := strbuf.New(string(p))
		if err != nil {
			return 0, err
		}
		w.client.response = b
		return len(p), nil
	}
	if err := w.client.response.AppendString(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// classify maps a fasthttp error to a transport result code.
func classify(err error) Result {
	if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) {
		return ResultTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ResultTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ResultConnectFailed
	}
	return ResultProtocolError
}

package transport

import (
	"net"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
)

const clientName = "clickatell-go/1.0"

// Engine owns the process-wide HTTP transport state: the connection pools
// behind every executor it creates. Acquire one at process start, share it
// across gateway clients, and Close it once at process end. Clients borrow
// the engine; they never own it.
type Engine struct {
	mu      sync.Mutex
	clients []*fasthttp.Client
	closed  bool
}

// NewEngine creates a ready-to-use Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// NewClient creates an executor backed by its own long-lived fasthttp
// client. Non-positive timeouts fall back to the package defaults. Fails
// once the engine has been closed.
func (e *Engine) NewClient(timeout, connectTimeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrEngineClosed
	}

	hc := &fasthttp.Client{
		Name:         clientName,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		Dial: func(addr string) (net.Conn, error) {
			return fasthttp.DialTimeout(addr, connectTimeout)
		},
	}
	e.clients = append(e.clients, hc)

	return &Client{engine: e, hc: hc, timeout: timeout}, nil
}

// Close shuts the engine down, closing the idle connections of every
// executor it created. Idempotent and nil-safe.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	for _, hc := range e.clients {
		hc.CloseIdleConnections()
	}
	e.clients = nil
	return nil
}

func (e *Engine) alive() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed
}

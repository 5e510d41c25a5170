package clickatell

import (
	"time"

	"github.com/clickatell/clickatell-go/transport"
)

// Observer receives notifications about each gateway request. Implementations
// must be safe for concurrent use if the client is shared.
type Observer interface {
	// OnRequestStart is called before the request is sent.
	OnRequestStart(method transport.Method, url string)

	// OnRequestEnd is called after the request completes, successfully or
	// not. status is zero when the request never reached the gateway.
	OnRequestEnd(method transport.Method, url string, status int, duration time.Duration, err error)
}

// NoopObserver is an Observer that does nothing.
type NoopObserver struct{}

func (NoopObserver) OnRequestStart(transport.Method, string) {}

func (NoopObserver) OnRequestEnd(transport.Method, string, int, time.Duration, error) {}

// Package transport executes single HTTP requests against the messaging
// gateway. It performs exactly one request per call: no retries, no backoff,
// no rate limiting. Partial-failure handling belongs to the caller.
package transport

import (
	"context"
	"errors"
	"time"

	"github.com/clickatell/clickatell-go/strbuf"
)

// Default timeouts applied when a non-positive value is configured.
const (
	DefaultTimeout        = 5 * time.Second
	DefaultConnectTimeout = 5 * time.Second
)

var (
	// ErrEngineClosed is returned when an executor is created from or used
	// after a shut-down Engine.
	ErrEngineClosed = errors.New("transport: engine is closed")

	// ErrInvalidURL is returned before any network I/O when the target URL
	// is empty or malformed.
	ErrInvalidURL = errors.New("transport: invalid request URL")
)

// Method selects the request verb.
type Method int

const (
	MethodGet Method = iota
	MethodPost
	MethodDelete
)

// String returns the wire form of the verb. Unknown values map to GET.
func (m Method) String() string {
	switch m {
	case MethodPost:
		return "POST"
	case MethodDelete:
		return "DELETE"
	default:
		return "GET"
	}
}

// Result is the transport-level outcome of the most recent Execute call.
// It is recorded on the executor; callers inspect it after a failed call to
// distinguish validation from network trouble.
type Result int

const (
	ResultOK Result = iota
	ResultInvalidInput
	ResultConnectFailed
	ResultTimeout
	ResultProtocolError
)

// String returns a short name for the result code.
func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultInvalidInput:
		return "invalid_input"
	case ResultConnectFailed:
		return "connect_failed"
	case ResultTimeout:
		return "timeout"
	case ResultProtocolError:
		return "protocol_error"
	default:
		return "unknown"
	}
}

// Header is one request header. Order is preserved on the wire.
type Header struct {
	Key   string
	Value string
}

// Executor is the narrow transport surface the gateway client depends on.
// Implementations hold a single response slot: each Execute overwrites it,
// and Reset discards it between calls. Executors are not safe for
// concurrent use.
type Executor interface {
	// Execute performs one request. A nil error means the transport round
	// trip completed; the HTTP status still needs checking via Status.
	Execute(ctx context.Context, url string, method Method, body []byte) error

	// Response returns the captured body of the most recent request, or
	// nil when none arrived.
	Response() *strbuf.Buffer

	// Status returns the HTTP status code of the most recent request.
	Status() int

	// Result returns the transport outcome of the most recent request.
	Result() Result

	// Reset discards the captured response.
	Reset()

	// SetHeaders replaces the headers attached to every request.
	SetHeaders(headers []Header)

	// Close releases the executor's resources. Safe to call repeatedly.
	Close() error
}

package clickatell

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the client. Use errors.Is to test for them.
var (
	// ErrInvalidConfig indicates the configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrClosed indicates an operation was attempted on a closed client.
	ErrClosed = errors.New("client is closed")

	// ErrInvalidInput indicates a required argument was empty or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMessageIDNotFound indicates a gateway response did not carry a
	// message ID in the expected shape.
	ErrMessageIDNotFound = errors.New("message ID not found in response")
)

// Kind classifies where in the call path an error originated.
type Kind int

const (
	// KindValidation covers configuration and argument errors caught
	// before any request is made.
	KindValidation Kind = iota
	// KindTransport covers network-level failures.
	KindTransport
	// KindResponse covers gateway responses the client could not use.
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with the operation it occurred in and a
// classification of the failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("clickatell: %s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationErr(op string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

func transportErr(op string, err error) error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

func responseErr(op string, err error) error {
	return &Error{Kind: KindResponse, Op: op, Err: err}
}

// Package strbuf implements the growable string buffer the rest of the
// library builds requests and parses responses with. Buffers grow by exact
// reallocation on every append; call volume per buffer is small enough that
// amortized capacity would buy nothing.
package strbuf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/clickatell/clickatell-go/diag"
)

var (
	// ErrInvalid is returned when the target buffer is nil or empty.
	ErrInvalid = errors.New("strbuf: invalid or empty buffer")

	// ErrEmptySource is returned when an append source holds no data.
	ErrEmptySource = errors.New("strbuf: empty source")

	// ErrBadTrim is returned for a non-positive trim length.
	ErrBadTrim = errors.New("strbuf: trim length must be positive")
)

// Buffer is an owned, resizable byte sequence. A Buffer never holds a
// partial mutation: failed operations leave it unchanged. An emptied buffer
// (for example after a full TrimPrefix) is invalid for further mutation and
// callers must check Len before reuse.
type Buffer struct {
	data []byte
}

// New creates a Buffer holding a copy of s. It fails when s is empty.
func New(s string) (*Buffer, error) {
	if s == "" {
		diag.Errorf("strbuf: refusing to create empty buffer")
		return nil, ErrInvalid
	}
	data := make([]byte, len(s))
	copy(data, s)
	return &Buffer{data: data}, nil
}

func (b *Buffer) valid() bool {
	return b != nil && len(b.data) > 0
}

// Len returns the number of bytes held. A nil Buffer has length zero.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// String returns a copy of the contents. A nil or empty Buffer yields "".
func (b *Buffer) String() string {
	if b == nil {
		return ""
	}
	return string(b.data)
}

// grow reallocates to exactly the current length plus n and returns the
// write offset for the new bytes.
func (b *Buffer) grow(n int) int {
	off := len(b.data)
	next := make([]byte, off+n)
	copy(next, b.data)
	b.data = next
	return off
}

// Append appends the contents of src. It fails without mutating b when b is
// invalid or src holds no data.
func (b *Buffer) Append(src *Buffer) error {
	if !b.valid() {
		diag.Errorf("strbuf: append to invalid buffer")
		return ErrInvalid
	}
	if src == nil || len(src.data) == 0 {
		diag.Errorf("strbuf: append from empty source")
		return ErrEmptySource
	}
	off := b.grow(len(src.data))
	copy(b.data[off:], src.data)
	return nil
}

// AppendString appends the raw string s. It fails without mutating b when b
// is invalid or s is empty.
func (b *Buffer) AppendString(s string) error {
	if !b.valid() {
		diag.Errorf("strbuf: append to invalid buffer")
		return ErrInvalid
	}
	if s == "" {
		diag.Errorf("strbuf: append from empty source")
		return ErrEmptySource
	}
	off := b.grow(len(s))
	copy(b.data[off:], s)
	return nil
}

// Appendf formats per fmt rules and appends the result. The formatted length
// is computed before the buffer grows, so exactly the needed space is
// allocated. A zero-length formatted result is a no-op.
func (b *Buffer) Appendf(format string, args ...any) error {
	if !b.valid() {
		diag.Errorf("strbuf: append to invalid buffer")
		return ErrInvalid
	}
	formatted := fmt.Sprintf(format, args...)
	if formatted == "" {
		return nil
	}
	off := b.grow(len(formatted))
	copy(b.data[off:], formatted)
	return nil
}

// TrimPrefix removes the first n bytes. A non-positive n is an error and a
// no-op. When n is at least the current length the buffer is emptied and
// becomes invalid for further mutation.
func (b *Buffer) TrimPrefix(n int) error {
	if !b.valid() {
		diag.Errorf("strbuf: trim on invalid buffer")
		return ErrInvalid
	}
	if n <= 0 {
		diag.Errorf("strbuf: trim length %d rejected", n)
		return ErrBadTrim
	}
	if n >= len(b.data) {
		b.data = nil
		return nil
	}
	next := make([]byte, len(b.data)-n)
	copy(next, b.data[n:])
	b.data = next
	return nil
}

// Find returns the index of the first occurrence of needle at or after
// start, or -1 when needle is absent, longer than the remaining haystack,
// or start lies outside the buffer.
func (b *Buffer) Find(needle string, start int) int {
	if !b.valid() || needle == "" {
		diag.Errorf("strbuf: find with invalid input")
		return -1
	}
	if start < 0 || start > len(b.data) || len(needle) > len(b.data)-start {
		return -1
	}
	idx := bytes.Index(b.data[start:], []byte(needle))
	if idx < 0 {
		return -1
	}
	return start + idx
}

// Dup returns a deep copy. It fails when b is invalid.
func (b *Buffer) Dup() (*Buffer, error) {
	if !b.valid() {
		diag.Errorf("strbuf: duplicate of invalid buffer")
		return nil, ErrInvalid
	}
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buffer{data: data}, nil
}

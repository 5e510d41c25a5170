package strbuf

import (
	"github.com/valyala/bytebufferpool"

	"github.com/clickatell/clickatell-go/diag"
)

const hexDigits = "0123456789abcdef"

// unreservedByte reports whether c may pass through a URL query string
// unencoded per RFC 3986.
func unreservedByte(c byte) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// URLEncode rewrites the buffer contents in place as a percent-encoded query
// value. Unreserved bytes pass through, a space becomes '+' (one character
// instead of three, which matters in SMS-sized payloads), and every other
// byte becomes '%' plus two lowercase hex digits. On failure the buffer is
// left unmodified.
func (b *Buffer) URLEncode() error {
	if !b.valid() {
		diag.Errorf("strbuf: url-encode on invalid buffer")
		return ErrInvalid
	}

	// Worst case every byte expands to three characters.
	scratch := bytebufferpool.Get()
	defer bytebufferpool.Put(scratch)
	if cap(scratch.B) < 3*len(b.data) {
		scratch.B = make([]byte, 0, 3*len(b.data))
	} else {
		scratch.B = scratch.B[:0]
	}

	for _, c := range b.data {
		switch {
		case unreservedByte(c):
			scratch.B = append(scratch.B, c)
		case c == ' ':
			scratch.B = append(scratch.B, '+')
		default:
			scratch.B = append(scratch.B, '%', hexDigits[c>>4], hexDigits[c&0xf])
		}
	}

	next := make([]byte, len(scratch.B))
	copy(next, scratch.B)
	b.data = next
	return nil
}

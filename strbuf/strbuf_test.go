package strbuf

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	b, err := New("hello")
	if err != nil {
		t.Fatalf("New(hello) error = %v", err)
	}
	if got := b.String(); got != "hello" {
		t.Errorf("String() = %q, want %q", got, "hello")
	}
	if got := b.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
}

func TestNew_Empty(t *testing.T) {
	b, err := New("")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("New(\"\") error = %v, want ErrInvalid", err)
	}
	if b != nil {
		t.Error("New(\"\") returned a buffer")
	}
}

func TestAppend_Associative(t *testing.T) {
	tests := []struct {
		a, b, c string
	}{
		{"x", "y", "z"},
		{"hello ", "wor", "ld"},
		{"?user=u", "&password=p", "&api_id=1"},
		{"\x00", "\xff", "\x7f"},
	}
	for _, tt := range tests {
		left, err := New(tt.a)
		if err != nil {
			t.Fatalf("New(%q) error = %v", tt.a, err)
		}
		if err := left.AppendString(tt.b); err != nil {
			t.Fatalf("AppendString(%q) error = %v", tt.b, err)
		}
		if err := left.AppendString(tt.c); err != nil {
			t.Fatalf("AppendString(%q) error = %v", tt.c, err)
		}
		want, err := New(tt.a + tt.b + tt.c)
		if err != nil {
			t.Fatalf("New(%q) error = %v", tt.a+tt.b+tt.c, err)
		}
		if left.String() != want.String() {
			t.Errorf("append chain = %q, want %q", left.String(), want.String())
		}
	}
}

func TestAppend_Buffer(t *testing.T) {
	dst, _ := New("head")
	src, _ := New("-tail")
	if err := dst.Append(src); err != nil {
		t.Fatalf("Append error = %v", err)
	}
	if got := dst.String(); got != "head-tail" {
		t.Errorf("String() = %q, want %q", got, "head-tail")
	}
	if got := src.String(); got != "-tail" {
		t.Errorf("source mutated to %q", got)
	}
}

func TestAppend_Errors(t *testing.T) {
	dst, _ := New("x")
	if err := dst.Append(nil); !errors.Is(err, ErrEmptySource) {
		t.Errorf("Append(nil) error = %v, want ErrEmptySource", err)
	}
	if err := dst.AppendString(""); !errors.Is(err, ErrEmptySource) {
		t.Errorf("AppendString(\"\") error = %v, want ErrEmptySource", err)
	}
	if got := dst.String(); got != "x" {
		t.Errorf("failed append mutated buffer to %q", got)
	}

	var invalid *Buffer
	if err := invalid.AppendString("y"); !errors.Is(err, ErrInvalid) {
		t.Errorf("append to nil buffer error = %v, want ErrInvalid", err)
	}
}

func TestAppendf(t *testing.T) {
	b, _ := New("id=")
	if err := b.Appendf("%d&name=%s", 42, "bob"); err != nil {
		t.Fatalf("Appendf error = %v", err)
	}
	if got := b.String(); got != "id=42&name=bob" {
		t.Errorf("String() = %q, want %q", got, "id=42&name=bob")
	}
}

func TestAppendf_EmptyResultIsNoop(t *testing.T) {
	b, _ := New("x")
	if err := b.Appendf("%s", ""); err != nil {
		t.Fatalf("Appendf error = %v", err)
	}
	if got := b.String(); got != "x" {
		t.Errorf("String() = %q, want %q", got, "x")
	}
}

func TestTrimPrefix(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		n       int
		want    string
		wantErr error
	}{
		{"partial", "abcdef", 3, "def", nil},
		{"single byte", "abcdef", 1, "bcdef", nil},
		{"zero is an error", "abcdef", 0, "abcdef", ErrBadTrim},
		{"negative is an error", "abcdef", -2, "abcdef", ErrBadTrim},
		{"exact length empties", "abcdef", 6, "", nil},
		{"beyond length empties", "abcdef", 10, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.initial)
			if err != nil {
				t.Fatalf("New error = %v", err)
			}
			err = b.TrimPrefix(tt.n)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("TrimPrefix(%d) error = %v, want %v", tt.n, err, tt.wantErr)
			}
			if got := b.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrimPrefix_EmptiedBufferIsInvalid(t *testing.T) {
	b, _ := New("ab")
	if err := b.TrimPrefix(2); err != nil {
		t.Fatalf("TrimPrefix error = %v", err)
	}
	if err := b.AppendString("more"); !errors.Is(err, ErrInvalid) {
		t.Errorf("append to emptied buffer error = %v, want ErrInvalid", err)
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		start    int
		want     int
	}{
		{"mid-string marker", "abcapiMessageIdxyz", "apiMessageId", 0, 3},
		{"needle longer than remainder", "abcapiMessageIdxyz", "apiMessageId", 10, -1},
		{"at start", "ID: abc", "ID: ", 0, 0},
		{"absent", "abcdef", "zzz", 0, -1},
		{"start beyond length", "abc", "a", 5, -1},
		{"second occurrence", "a,a,a", "a", 1, 2},
		{"match at end", "xyzID", "ID", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.haystack)
			if err != nil {
				t.Fatalf("New error = %v", err)
			}
			if got := b.Find(tt.needle, tt.start); got != tt.want {
				t.Errorf("Find(%q, %d) = %d, want %d", tt.needle, tt.start, got, tt.want)
			}
		})
	}
}

func TestDup(t *testing.T) {
	orig, _ := New("payload")
	dup, err := orig.Dup()
	if err != nil {
		t.Fatalf("Dup error = %v", err)
	}
	if dup.String() != orig.String() {
		t.Fatalf("Dup() = %q, want %q", dup.String(), orig.String())
	}
	if err := dup.AppendString("-extra"); err != nil {
		t.Fatalf("AppendString error = %v", err)
	}
	if got := orig.String(); got != "payload" {
		t.Errorf("mutating the copy changed the original to %q", got)
	}

	var invalid *Buffer
	if _, err := invalid.Dup(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Dup of nil buffer error = %v, want ErrInvalid", err)
	}
}

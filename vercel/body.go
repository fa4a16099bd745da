package vercel

import (
	"bytes"
	"fmt"
	"io"
)

// Kind identifies the variant of a Body.
type Kind int

const (
	// KindEmpty is a body without content.
	KindEmpty Kind = iota

	// KindText is a UTF-8 text body.
	KindText

	// KindBinary is a raw binary body.
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Body is the payload of a request or response. It is either empty, text
// or binary; the kind decides how the body is encoded on the wire.
type Body struct {
	kind Kind
	text string
	data []byte
}

// Empty returns an empty body. It is equal to the zero value.
func Empty() Body {
	return Body{}
}

// Text returns a text body.
func Text(s string) Body {
	return Body{kind: KindText, text: s}
}

// Binary returns a binary body. The slice is not copied and must not be
// modified afterwards.
func Binary(b []byte) Body {
	return Body{kind: KindBinary, data: b}
}

// BodyFromReader reads r into a body. The caller decides whether the
// content is binary; the bytes are never inspected.
func BodyFromReader(r io.Reader, binary bool) (Body, error) {
	if r == nil {
		return Empty(), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Body{}, err
	}

	if binary {
		return Binary(data), nil
	}

	return Text(string(data)), nil
}

// Kind returns the variant of the body.
func (b Body) Kind() Kind {
	return b.kind
}

// IsEmpty reports whether b is the empty variant. A zero-length text or
// binary body is not empty.
func (b Body) IsEmpty() bool {
	return b.kind == KindEmpty
}

// Bytes returns the content of the body.
func (b Body) Bytes() []byte {
	switch b.kind {
	case KindText:
		return []byte(b.text)
	case KindBinary:
		return b.data
	default:
		return []byte{}
	}
}

// Len returns the content length in bytes.
func (b Body) Len() int {
	switch b.kind {
	case KindText:
		return len(b.text)
	case KindBinary:
		return len(b.data)
	default:
		return 0
	}
}

// Reader returns the content as an http body.
func (b Body) Reader() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(b.Bytes()))
}

func (b Body) String() string {
	switch b.kind {
	case KindText:
		return fmt.Sprintf("Text(%q)", b.text)
	case KindBinary:
		return fmt.Sprintf("Binary(%d bytes)", len(b.data))
	default:
		return "Empty"
	}
}

// BodyType is the set of request body types a handler can receive.
type BodyType interface {
	Body | []byte | string
}

// ConvertBody converts b into the body type of a handler.
func ConvertBody[B BodyType](b Body) B {
	var out B
	switch p := any(&out).(type) {
	case *Body:
		*p = b
	case *[]byte:
		*p = b.Bytes()
	case *string:
		*p = string(b.Bytes())
	}
	return out
}

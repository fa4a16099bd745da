package vercel

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/aws/aws-lambda-go/lambda/messages"
)

var (
	// ErrEnvelopeMalformed is returned when the event or the request it
	// carries cannot be parsed.
	ErrEnvelopeMalformed = errors.New("malformed envelope")

	// ErrBodyDecode is returned when a body flagged as base64 cannot be
	// decoded.
	ErrBodyDecode = errors.New("body decode failed")
)

const (
	errorTypeEnvelopeMalformed = "EnvelopeMalformed"
	errorTypeBodyDecode        = "BodyDecodeError"
)

// Error is the platform representation of a failed invocation.
type Error struct {
	// Type is reported to the platform as the error type.
	Type string `json:"errorType"`

	// Message is reported to the platform as the error message.
	Message string `json:"errorMessage"`

	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// NewError creates a platform error with the given type and message.
func NewError(typ, message string) *Error {
	return &Error{Type: typ, Message: message}
}

func (e *Error) Error() string {
	if e.Type == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvokeError returns the error in the shape expected by the runtime.
func (e *Error) InvokeError() messages.InvokeResponse_Error {
	return messages.InvokeResponse_Error{
		Type:    e.Type,
		Message: e.Message,
	}
}

// InvokeErrorer is implemented by errors that convert themselves into the
// runtime's error shape.
type InvokeErrorer interface {
	InvokeError() messages.InvokeResponse_Error
}

// ErrorMapper converts a handler error into a platform error.
type ErrorMapper func(error) *Error

// DefaultErrorMapper keeps errors that already carry a platform
// representation and otherwise reports the error's type name and message.
func DefaultErrorMapper(err error) *Error {
	var verr *Error
	if errors.As(err, &verr) {
		return verr
	}

	var ie InvokeErrorer
	if errors.As(err, &ie) {
		res := ie.InvokeError()
		return &Error{Type: res.Type, Message: res.Message, Err: err}
	}

	var ire messages.InvokeResponse_Error
	if errors.As(err, &ire) {
		return &Error{Type: ire.Type, Message: ire.Message, Err: err}
	}

	return &Error{
		Type:    errorTypeName(err),
		Message: err.Error(),
		Err:     err,
	}
}

func errorTypeName(err error) string {
	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Pointer {
		return t.Elem().Name()
	}
	return t.Name()
}

// parseError wraps a parse failure into the platform representation.
func parseError(err error) *Error {
	typ := errorTypeEnvelopeMalformed
	if errors.Is(err, ErrBodyDecode) {
		typ = errorTypeBodyDecode
	}

	return &Error{Type: typ, Message: err.Error(), Err: err}
}

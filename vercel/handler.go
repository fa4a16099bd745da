package vercel

import (
	"context"
	"reflect"
)

// Handler processes a single translated request. B is the request body
// type, R the result type.
type Handler[B BodyType, R IntoResponse] interface {
	ServeEvent(ctx context.Context, req *Request[B]) (R, error)
}

// HandlerFunc is an adapter to allow ordinary functions to be used as
// handlers.
type HandlerFunc[B BodyType, R IntoResponse] func(ctx context.Context, req *Request[B]) (R, error)

// ServeEvent calls f(ctx, req).
func (f HandlerFunc[B, R]) ServeEvent(ctx context.Context, req *Request[B]) (R, error) {
	return f(ctx, req)
}

func isNilHandler[B BodyType, R IntoResponse](h Handler[B, R]) bool {
	if h == nil {
		return true
	}
	switch v := reflect.ValueOf(h); v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// intoResponse converts a handler result. A nil result is an empty 200
// response.
func intoResponse[R IntoResponse](result R) *Response {
	if any(result) == nil {
		return &Response{}
	}

	if res := result.IntoResponse(); res != nil {
		return res
	}

	return &Response{}
}

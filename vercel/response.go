package vercel

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/lambda-feedback/vercel-lambda/strmap"
)

// Response is the generic response produced by handlers.
type Response struct {
	StatusCode int
	Header     strmap.StrMap
	Body       Body
}

// NewResponse creates a response with the given status code and body.
func NewResponse(status int, body Body) *Response {
	return &Response{StatusCode: status, Body: body}
}

// IntoResponse is implemented by handler results that can be converted
// into a Response.
type IntoResponse interface {
	IntoResponse() *Response
}

// IntoResponse returns r itself.
func (r *Response) IntoResponse() *Response {
	return r
}

// TextResponse is a 200 response with a text body.
type TextResponse string

// IntoResponse implements IntoResponse.
func (s TextResponse) IntoResponse() *Response {
	return NewResponse(http.StatusOK, Text(string(s)))
}

// BinaryResponse is a 200 response with a binary body.
type BinaryResponse []byte

// IntoResponse implements IntoResponse.
func (b BinaryResponse) IntoResponse() *Response {
	return NewResponse(http.StatusOK, Binary(b))
}

// StatusResponse is a response with an empty body.
type StatusResponse int

// IntoResponse implements IntoResponse.
func (s StatusResponse) IntoResponse() *Response {
	return NewResponse(int(s), Empty())
}

// ProxyResponse is the response document returned to the platform.
type ProxyResponse struct {
	StatusCode int           `json:"statusCode"`
	Headers    strmap.StrMap `json:"headers"`
	Body       string        `json:"body"`
	Encoding   Encoding      `json:"encoding"`
}

// NewProxyResponse builds the response document. Binary bodies are base64
// encoded, text and empty bodies are emitted as literal strings.
func NewProxyResponse(r *Response) ProxyResponse {
	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	res := ProxyResponse{
		StatusCode: status,
		Headers:    strmap.New(r.Header.Pairs()...),
		Encoding:   EncodingText,
	}

	switch r.Body.Kind() {
	case KindText:
		res.Body = string(r.Body.Bytes())
	case KindBinary:
		res.Body = base64.StdEncoding.EncodeToString(r.Body.Bytes())
		res.Encoding = EncodingBase64
	}

	return res
}

// Response converts the document back into a Response.
func (pr ProxyResponse) Response() (*Response, error) {
	res := &Response{
		StatusCode: pr.StatusCode,
		Header:     pr.Headers,
	}

	switch pr.Encoding {
	case EncodingBase64:
		data, err := base64.StdEncoding.DecodeString(pr.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBodyDecode, err)
		}
		res.Body = Binary(data)
	case EncodingText, "":
		if pr.Body != "" {
			res.Body = Text(pr.Body)
		}
	default:
		return nil, fmt.Errorf("%w: unknown encoding %q", ErrEnvelopeMalformed, pr.Encoding)
	}

	return res, nil
}

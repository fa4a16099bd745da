package vercel

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/lambda-feedback/vercel-lambda/strmap"
	"github.com/lambda-feedback/vercel-lambda/vercel/schema"
)

// Encoding is the encoding of a body on the wire.
type Encoding string

const (
	// EncodingText marks a body as a literal UTF-8 string.
	EncodingText Encoding = "text"

	// EncodingBase64 marks a body as base64 encoded binary data.
	EncodingBase64 Encoding = "base64"
)

// Event is the payload delivered by the platform for each invocation.
// Body holds the JSON encoded ProxyRequest.
type Event struct {
	Action string `json:"Action,omitempty"`
	Body   string `json:"body"`
}

// ProxyRequest is the request document carried in an Event.
type ProxyRequest struct {
	Host     string        `json:"host,omitempty"`
	Path     string        `json:"path"`
	Method   string        `json:"method"`
	Headers  strmap.StrMap `json:"headers"`
	Query    strmap.StrMap `json:"query"`
	Body     *string       `json:"body,omitempty"`
	Encoding Encoding      `json:"encoding,omitempty"`
}

// Request is the translated request handed to handlers. B is the body
// type the handler works with.
type Request[B any] struct {
	Method string

	// Host is the host the request was sent to, if the platform
	// provided one.
	Host string

	// Path is the path as sent by the platform.
	Path string

	// URL is the request target, with the query parameters attached.
	URL *url.URL

	Header strmap.StrMap
	Query  strmap.StrMap
	Body   B
}

// MapRequest returns a copy of r whose body is converted by f.
func MapRequest[A, B any](r *Request[A], f func(A) B) *Request[B] {
	return &Request[B]{
		Method: r.Method,
		Host:   r.Host,
		Path:   r.Path,
		URL:    r.URL,
		Header: r.Header,
		Query:  r.Query,
		Body:   f(r.Body),
	}
}

// NewHTTPRequest converts r into a net/http request.
func NewHTTPRequest(ctx context.Context, r *Request[Body]) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL.String(), r.Body.Reader())
	if err != nil {
		return nil, err
	}

	req.Header = r.Header.Header()
	req.ContentLength = int64(r.Body.Len())
	if r.Host != "" {
		req.Host = r.Host
	}

	return req, nil
}

// Parser turns platform events into requests.
type Parser struct {
	schema *schema.Schema
}

// NewParser creates a parser. If validate is set, request documents are
// checked against the request JSON schema before they are decoded.
func NewParser(validate bool) (*Parser, error) {
	p := &Parser{}

	if validate {
		s, err := schema.NewRequestSchema()
		if err != nil {
			return nil, err
		}
		p.schema = s
	}

	return p, nil
}

// ParseEvent parses a raw event without schema validation.
func ParseEvent(payload []byte) (*Request[Body], error) {
	return (&Parser{}).Parse(payload)
}

// Parse decodes the event payload and the request document it carries.
func (p *Parser) Parse(payload []byte) (*Request[Body], error) {
	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("%w: event: %w", ErrEnvelopeMalformed, err)
	}

	return p.ParseRequest([]byte(evt.Body))
}

// ParseRequest decodes a request document.
func (p *Parser) ParseRequest(data []byte) (*Request[Body], error) {
	if p.schema != nil {
		if err := p.schema.Validate(data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEnvelopeMalformed, err)
		}
	}

	var pr ProxyRequest
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, fmt.Errorf("%w: request: %w", ErrEnvelopeMalformed, err)
	}

	return pr.Request()
}

// Request converts the document into a Request.
func (pr ProxyRequest) Request() (*Request[Body], error) {
	if pr.Method == "" || !httpguts.ValidHeaderFieldName(pr.Method) {
		return nil, fmt.Errorf("%w: invalid method %q", ErrEnvelopeMalformed, pr.Method)
	}

	body, err := pr.decodeBody()
	if err != nil {
		return nil, err
	}

	u, err := pr.url()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid path %q: %w", ErrEnvelopeMalformed, pr.Path, err)
	}

	return &Request[Body]{
		Method: pr.Method,
		Host:   pr.Host,
		Path:   pr.Path,
		URL:    u,
		Header: pr.Headers,
		Query:  pr.Query,
		Body:   body,
	}, nil
}

func (pr ProxyRequest) decodeBody() (Body, error) {
	switch pr.Encoding {
	case EncodingBase64, EncodingText, "":
	default:
		return Body{}, fmt.Errorf("%w: unknown encoding %q", ErrEnvelopeMalformed, pr.Encoding)
	}

	if pr.Body == nil {
		return Empty(), nil
	}

	if pr.Encoding != EncodingBase64 {
		return Text(*pr.Body), nil
	}

	data, err := base64.StdEncoding.DecodeString(*pr.Body)
	if err != nil {
		return Body{}, fmt.Errorf("%w: %w", ErrBodyDecode, err)
	}

	return Binary(data), nil
}

func (pr ProxyRequest) url() (*url.URL, error) {
	path := pr.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u, err := url.ParseRequestURI(path)
	if err != nil {
		return nil, err
	}

	if pr.Host != "" {
		u.Scheme = "https"
		u.Host = pr.Host
	}

	if !pr.Query.IsEmpty() {
		if u.RawQuery != "" {
			u.RawQuery += "&"
		}
		u.RawQuery += pr.Query.Encode()
	}

	return u, nil
}

package vercel

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"sort"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/lambda-feedback/vercel-lambda/strmap"
)

// HTTPHandler runs a net/http handler as a Vercel handler. As with
// net/http, a handler that never writes a status responds with 200.
func HTTPHandler(h http.Handler) Handler[Body, *Response] {
	return &httpHandler{adapter: httpadapter.New(implicitStatus(h))}
}

func implicitStatus(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		h.ServeHTTP(sw, r)
		if !sw.wroteHeader {
			sw.WriteHeader(http.StatusOK)
		}
	})
}

// statusWriter records whether the handler committed a status.
type statusWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

type httpHandler struct {
	adapter *httpadapter.HandlerAdapter
}

func (h *httpHandler) ServeEvent(ctx context.Context, req *Request[Body]) (*Response, error) {
	res, err := h.adapter.ProxyWithContext(ctx, newProxyEvent(req))
	if err != nil {
		return nil, err
	}

	return fromProxyEvent(res)
}

func newProxyEvent(req *Request[Body]) events.APIGatewayProxyRequest {
	evt := events.APIGatewayProxyRequest{
		Path:                            req.URL.Path,
		HTTPMethod:                      req.Method,
		MultiValueHeaders:               req.Header.Header(),
		MultiValueQueryStringParameters: req.URL.Query(),
	}

	// the adapter derives the request host from the domain name
	evt.RequestContext.DomainName = req.Host

	switch req.Body.Kind() {
	case KindText:
		evt.Body = string(req.Body.Bytes())
	case KindBinary:
		evt.Body = base64.StdEncoding.EncodeToString(req.Body.Bytes())
		evt.IsBase64Encoded = true
	}

	return evt
}

func fromProxyEvent(evt events.APIGatewayProxyResponse) (*Response, error) {
	header := strmap.FromHeader(evt.MultiValueHeaders)

	single := make([]string, 0, len(evt.Headers))
	for k := range evt.Headers {
		if _, ok := evt.MultiValueHeaders[k]; !ok {
			single = append(single, k)
		}
	}
	sort.Strings(single)

	for _, k := range single {
		header.Add(k, evt.Headers[k])
	}

	res := &Response{
		StatusCode: evt.StatusCode,
		Header:     header,
	}

	switch {
	case evt.IsBase64Encoded:
		data, err := base64.StdEncoding.DecodeString(evt.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBodyDecode, err)
		}
		res.Body = Binary(data)
	case evt.Body != "":
		res.Body = Text(evt.Body)
	}

	return res, nil
}

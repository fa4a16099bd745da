package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/vercel-lambda/strmap"
	"github.com/lambda-feedback/vercel-lambda/vercel"
)

// RequestIDHeader carries the id of an emulated invocation.
const RequestIDHeader = "x-vercel-id"

// Invoker runs a single raw event, as the Lambda runtime would.
type Invoker interface {
	Invoke(ctx context.Context, payload []byte) ([]byte, error)
}

type EmulatorHandlerParams struct {
	fx.In

	Dispatcher *vercel.Dispatcher
	Log        *zap.Logger
}

func NewEmulatorHandler(params EmulatorHandlerParams) *EmulatorHandler {
	return &EmulatorHandler{
		invoker: params.Dispatcher,
		log:     params.Log,
	}
}

// EmulatorHandler serves plain HTTP requests by wrapping them into
// platform events, invoking the dispatcher and unwrapping the response
// document.
type EmulatorHandler struct {
	invoker Invoker
	log     *zap.Logger
}

func (h *EmulatorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)

	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		r.Header.Set(RequestIDHeader, requestID)
	}

	log = log.With(zap.String("request_id", requestID))

	payload, err := NewEvent(r)
	if err != nil {
		log.Debug("failed to build event", zap.Error(err))
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	ctx := lambdacontext.NewContext(r.Context(), &lambdacontext.LambdaContext{
		AwsRequestID: requestID,
	})

	out, err := h.invoker.Invoke(ctx, payload)
	if err != nil {
		log.Info("invocation failed", zap.Error(err))
		writeError(w, vercel.DefaultErrorMapper(err))
		return
	}

	var doc vercel.ProxyResponse
	if err := json.Unmarshal(out, &doc); err != nil {
		log.Error("failed to decode response document", zap.Error(err))
		writeError(w, vercel.NewError("ResponseDecodeError", err.Error()))
		return
	}

	res, err := doc.Response()
	if err != nil {
		log.Error("invalid response document", zap.Error(err))
		writeError(w, vercel.NewError("ResponseDecodeError", err.Error()))
		return
	}

	// Map response headers
	res.Header.Range(func(key, value string) bool {
		w.Header().Add(key, value)
		return true
	})
	w.Header().Set(RequestIDHeader, requestID)

	// Write response headers and status code
	w.WriteHeader(res.StatusCode)

	// Write response body
	if _, err := w.Write(res.Body.Bytes()); err != nil {
		log.Debug("failed to write response", zap.Error(err))
	}
}

// NewEvent encodes r as a platform event. Bodies that are not valid UTF-8
// are sent base64 encoded.
func NewEvent(r *http.Request) ([]byte, error) {
	query, err := strmap.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}

	doc := vercel.ProxyRequest{
		Host:    r.Host,
		Path:    r.URL.EscapedPath(),
		Method:  r.Method,
		Headers: strmap.FromHeader(r.Header),
		Query:   query,
	}

	if r.Body != nil {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}

		if len(data) > 0 {
			body := string(data)
			doc.Encoding = vercel.EncodingText
			if !utf8.Valid(data) {
				body = base64.StdEncoding.EncodeToString(data)
				doc.Encoding = vercel.EncodingBase64
			}
			doc.Body = &body
		}
	}

	request, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	return json.Marshal(vercel.Event{Action: "Invoke", Body: string(request)})
}

func writeError(w http.ResponseWriter, verr *vercel.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(verr)
}

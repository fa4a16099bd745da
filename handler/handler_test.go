package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-lambda-go/lambda/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/vercel-lambda/vercel"
)

// --- Mock invoker ---
type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	args := m.Called(ctx, payload)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func decodeEvent(t *testing.T, payload []byte) vercel.ProxyRequest {
	t.Helper()

	var evt vercel.Event
	require.NoError(t, json.Unmarshal(payload, &evt))

	var doc vercel.ProxyRequest
	require.NoError(t, json.Unmarshal([]byte(evt.Body), &doc))

	return doc
}

func TestNewEvent_TextBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/items?b=2&a=1&a=3", bytes.NewReader([]byte("hello")))
	req.Header.Set("X-Test", "yes")

	payload, err := NewEvent(req)
	require.NoError(t, err)

	doc := decodeEvent(t, payload)

	assert.Equal(t, "example.com", doc.Host)
	assert.Equal(t, "/items", doc.Path)
	assert.Equal(t, http.MethodPost, doc.Method)
	assert.Equal(t, []string{"yes"}, doc.Headers.Values("X-Test"))
	assert.Equal(t, []string{"1", "3"}, doc.Query.Values("a"))
	assert.Equal(t, []string{"b", "a"}, doc.Query.Keys())
	assert.Equal(t, vercel.EncodingText, doc.Encoding)
	require.NotNil(t, doc.Body)
	assert.Equal(t, "hello", *doc.Body)
}

func TestNewEvent_QueryOrder(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/s?z=1&a=2&z=3", nil)

	payload, err := NewEvent(req)
	require.NoError(t, err)

	doc := decodeEvent(t, payload)

	// the document groups values by key in first-occurrence order
	assert.Equal(t, []string{"z", "a"}, doc.Query.Keys())
	assert.Equal(t, []string{"1", "3"}, doc.Query.Values("z"))
}

func TestServeHTTP_InvalidQuery(t *testing.T) {
	mockInvoker := new(MockInvoker)
	handler := &EmulatorHandler{invoker: mockInvoker, log: zap.NewNop()}

	req := httptest.NewRequest(http.MethodGet, "/s", nil)
	req.URL.RawQuery = "a=%zz"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockInvoker.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestNewEvent_BinaryBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/blob", bytes.NewReader([]byte{0xff, 0xfe, 0x00}))

	payload, err := NewEvent(req)
	require.NoError(t, err)

	doc := decodeEvent(t, payload)

	assert.Equal(t, vercel.EncodingBase64, doc.Encoding)
	require.NotNil(t, doc.Body)
	assert.Equal(t, "//4A", *doc.Body)
}

func TestNewEvent_NoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	payload, err := NewEvent(req)
	require.NoError(t, err)

	parsed, err := vercel.ParseEvent(payload)
	require.NoError(t, err)
	assert.True(t, parsed.Body.IsEmpty())
}

func TestServeHTTP_Success(t *testing.T) {
	mockInvoker := new(MockInvoker)

	out := []byte(`{"statusCode":201,"headers":{"x":["1","2"]},"body":"created","encoding":"text"}`)
	mockInvoker.On("Invoke", mock.Anything, mock.MatchedBy(func(payload []byte) bool {
		doc := decodeEvent(t, payload)
		return doc.Path == "/test" && doc.Method == http.MethodPost
	})).Return(out, nil)

	handler := &EmulatorHandler{
		invoker: mockInvoker,
		log:     zap.NewNop(),
	}

	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(`{"example":"value"}`)))
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, []string{"1", "2"}, res.Header.Values("x"))
	assert.Equal(t, "abc", res.Header.Get(RequestIDHeader))
	assert.Equal(t, "created", string(body))
	mockInvoker.AssertExpectations(t)
}

func TestServeHTTP_AssignsRequestID(t *testing.T) {
	mockInvoker := new(MockInvoker)
	mockInvoker.On("Invoke", mock.Anything, mock.Anything).
		Return([]byte(`{"statusCode":204,"headers":{},"body":"","encoding":"text"}`), nil)

	handler := &EmulatorHandler{invoker: mockInvoker, log: zap.NewNop()}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestServeHTTP_InvocationFailed(t *testing.T) {
	mockInvoker := new(MockInvoker)
	mockInvoker.On("Invoke", mock.Anything, mock.Anything).
		Return(nil, messages.InvokeResponse_Error{Type: "NotFound", Message: "gone"})

	handler := &EmulatorHandler{invoker: mockInvoker, log: zap.NewNop()}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"errorType":"NotFound","errorMessage":"gone"}`, w.Body.String())
}

func TestServeHTTP_InvalidResponseDocument(t *testing.T) {
	mockInvoker := new(MockInvoker)
	mockInvoker.On("Invoke", mock.Anything, mock.Anything).Return([]byte(`not json`), nil)

	handler := &EmulatorHandler{invoker: mockInvoker, log: zap.NewNop()}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "ResponseDecodeError")
}

func TestServeHTTP_Dispatcher(t *testing.T) {
	h := vercel.HandlerFunc[vercel.Body, *vercel.Response](
		func(ctx context.Context, req *vercel.Request[vercel.Body]) (*vercel.Response, error) {
			res := vercel.NewResponse(http.StatusOK, req.Body)
			for _, v := range req.Header.ValuesFold("x-echo") {
				res.Header.Add("X-Echo", v)
			}
			return res, nil
		},
	)

	d, err := vercel.NewDispatcher[vercel.Body, *vercel.Response](h, vercel.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	handler := NewEmulatorHandler(EmulatorHandlerParams{
		Dispatcher: d,
		Log:        zaptest.NewLogger(t),
	})

	binary := []byte{0x00, 0xc3, 0x28, 0xff}
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(binary))
	req.Header.Add("X-Echo", "a")
	req.Header.Add("X-Echo", "b")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, binary, w.Body.Bytes())
	assert.Equal(t, []string{"a", "b"}, w.Header().Values("X-Echo"))
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	HealthHandler(w, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

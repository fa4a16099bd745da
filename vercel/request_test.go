package vercel_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/vercel-lambda/strmap"
	"github.com/lambda-feedback/vercel-lambda/vercel"
)

func newEvent(t *testing.T, request string) []byte {
	t.Helper()

	data, err := json.Marshal(vercel.Event{Action: "Invoke", Body: request})
	require.NoError(t, err)

	return data
}

func newParser(t *testing.T) *vercel.Parser {
	t.Helper()

	p, err := vercel.NewParser(true)
	require.NoError(t, err)

	return p
}

func TestParser_Parse_Base64Body(t *testing.T) {
	req, err := newParser(t).Parse(newEvent(t,
		`{"method":"POST","path":"/upload","body":"aGVsbG8=","encoding":"base64"}`,
	))
	require.NoError(t, err)

	assert.Equal(t, vercel.Binary([]byte("hello")), req.Body)
}

func TestParser_Parse_TextBody(t *testing.T) {
	req, err := newParser(t).Parse(newEvent(t,
		`{"method":"POST","path":"/","body":"hello"}`,
	))
	require.NoError(t, err)

	assert.Equal(t, vercel.Text("hello"), req.Body)
}

func TestParser_Parse_MissingFields(t *testing.T) {
	req, err := newParser(t).Parse(newEvent(t, `{"method":"GET","path":"/"}`))
	require.NoError(t, err)

	assert.True(t, req.Body.IsEmpty())
	assert.True(t, req.Header.IsEmpty())
	assert.True(t, req.Query.IsEmpty())
	assert.Equal(t, "/", req.URL.String())
}

func TestParser_Parse_HeadersAndQuery(t *testing.T) {
	req, err := newParser(t).Parse(newEvent(t, `{
		"host": "example.vercel.app",
		"method": "GET",
		"path": "/search?lang=en",
		"headers": {"X-B": "2", "x-a": ["1", "3"]},
		"query": [["q", "a"], ["p", "1"], ["q", "b c"]]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"X-B", "x-a"}, req.Header.Keys())
	assert.Equal(t, []string{"1", "3"}, req.Header.Values("x-a"))
	assert.Equal(t, []string{"a", "b c"}, req.Query.Values("q"))

	assert.Equal(t, "example.vercel.app", req.Host)
	assert.Equal(t, "/search?lang=en", req.Path)
	assert.Equal(t, "https://example.vercel.app/search?lang=en&q=a&p=1&q=b+c", req.URL.String())
}

func TestParser_Parse_Malformed(t *testing.T) {
	tests := map[string][]byte{
		"outer not json":    []byte(`{not json`),
		"inner not json":    newEvent(t, `{not json`),
		"inner empty":       newEvent(t, ``),
		"missing method":    newEvent(t, `{"path":"/"}`),
		"mistyped headers":  newEvent(t, `{"method":"GET","path":"/","headers":1}`),
		"unknown encoding":  newEvent(t, `{"method":"GET","path":"/","body":"x","encoding":"gzip"}`),
		"invalid method":    newEvent(t, `{"method":"G E T","path":"/"}`),
		"outer wrong shape": []byte(`[]`),
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := newParser(t).Parse(payload)
			assert.ErrorIs(t, err, vercel.ErrEnvelopeMalformed)
		})
	}
}

func TestParser_Parse_BadBase64(t *testing.T) {
	_, err := newParser(t).Parse(newEvent(t,
		`{"method":"POST","path":"/","body":"!!not base64!!","encoding":"base64"}`,
	))

	assert.ErrorIs(t, err, vercel.ErrBodyDecode)
	assert.NotErrorIs(t, err, vercel.ErrEnvelopeMalformed)
}

func TestParseEvent_WithoutSchema(t *testing.T) {
	req, err := vercel.ParseEvent(newEvent(t, `{"method":"GET","path":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "/x", req.URL.Path)

	_, err = vercel.ParseEvent(newEvent(t, `{"path":"/"}`))
	assert.ErrorIs(t, err, vercel.ErrEnvelopeMalformed)

	_, err = vercel.ParseEvent(newEvent(t, `{"method":"GET","path":"/","headers":{"a":1}}`))
	assert.ErrorIs(t, err, vercel.ErrEnvelopeMalformed)
}

func TestMapRequest(t *testing.T) {
	req := &vercel.Request[vercel.Body]{
		Method: "GET",
		Header: strmap.New(strmap.Pair{Key: "a", Value: "1"}),
		Body:   vercel.Text("hi"),
	}

	mapped := vercel.MapRequest(req, vercel.ConvertBody[string])

	assert.Equal(t, "hi", mapped.Body)
	assert.Equal(t, "GET", mapped.Method)
	assert.True(t, req.Header.Equal(mapped.Header))
}

func TestNewHTTPRequest(t *testing.T) {
	req, err := vercel.ParseEvent(newEvent(t, `{
		"host": "example.com",
		"method": "PUT",
		"path": "/items/1",
		"headers": [["Content-Type", "text/plain"], ["X-Tag", "a"], ["X-Tag", "b"]],
		"query": {"v": "2"},
		"body": "payload"
	}`))
	require.NoError(t, err)

	httpReq, err := vercel.NewHTTPRequest(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "PUT", httpReq.Method)
	assert.Equal(t, "example.com", httpReq.Host)
	assert.Equal(t, "/items/1", httpReq.URL.Path)
	assert.Equal(t, "2", httpReq.URL.Query().Get("v"))
	assert.Equal(t, "text/plain", httpReq.Header.Get("Content-Type"))
	assert.Equal(t, []string{"a", "b"}, httpReq.Header.Values("X-Tag"))
	assert.Equal(t, int64(7), httpReq.ContentLength)

	body, err := io.ReadAll(httpReq.Body)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
}

// Package echo provides the handler served by the bundled binary. It
// describes every request it receives, which makes it useful to inspect
// what the platform delivers.
package echo

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lambda-feedback/vercel-lambda/strmap"
	"github.com/lambda-feedback/vercel-lambda/vercel"
)

// Reply is the JSON document returned for every request.
type Reply struct {
	Method  string        `json:"method"`
	Host    string        `json:"host"`
	Path    string        `json:"path"`
	URL     string        `json:"url"`
	Headers strmap.StrMap `json:"headers"`
	Query   strmap.StrMap `json:"query"`
	Kind    string        `json:"kind"`
	Length  int           `json:"length"`
	Text    string        `json:"text,omitempty"`
	Binary  []byte        `json:"binary,omitempty"`
}

// Handler returns the echo handler.
func Handler() vercel.Handler[vercel.Body, *vercel.Response] {
	return vercel.HandlerFunc[vercel.Body, *vercel.Response](Serve)
}

// Serve describes req as a JSON document.
func Serve(_ context.Context, req *vercel.Request[vercel.Body]) (*vercel.Response, error) {
	reply := Reply{
		Method:  req.Method,
		Host:    req.Host,
		Path:    req.Path,
		URL:     req.URL.String(),
		Headers: req.Header,
		Query:   req.Query,
		Kind:    req.Body.Kind().String(),
		Length:  req.Body.Len(),
	}

	switch req.Body.Kind() {
	case vercel.KindText:
		reply.Text = string(req.Body.Bytes())
	case vercel.KindBinary:
		reply.Binary = req.Body.Bytes()
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return nil, err
	}

	res := vercel.NewResponse(http.StatusOK, vercel.Text(string(data)))
	res.Header.Add("Content-Type", "application/json")

	return res, nil
}

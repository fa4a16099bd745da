package server

import (
	"net/http"

	"go.uber.org/fx"
)

// HttpHandler is a route served by the http server. Pattern follows the
// syntax of http.ServeMux.
type HttpHandler struct {
	Pattern string
	Handler http.Handler
}

// HttpHandlerResult adds a route to the handlers group consumed by the
// http server.
type HttpHandlerResult struct {
	fx.Out

	Handler *HttpHandler `group:"handlers"`
}

func AsHttpHandler(pattern string, handler http.Handler) HttpHandlerResult {
	return HttpHandlerResult{
		Handler: &HttpHandler{
			Pattern: pattern,
			Handler: handler,
		},
	}
}

package handler

import (
	"net/http"

	"github.com/lambda-feedback/vercel-lambda/internal/server"
)

// HealthPath is served by the emulator itself and never reaches the
// dispatcher.
const HealthPath = "/_health"

func NewEmulatorRoute(handler *EmulatorHandler) server.HttpHandlerResult {
	return server.AsHttpHandler("/", handler)
}

func NewHealthRoute() server.HttpHandlerResult {
	return server.AsHttpHandler(HealthPath, http.HandlerFunc(HealthHandler))
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

package api

import (
	"net/http"

	"freight-tracking-service/internal/api/handlers"
	"freight-tracking-service/internal/tracking"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(manager *tracking.Manager) http.Handler {
	mux := http.NewServeMux()

	sessionHandler := &handlers.SessionHandler{Manager: manager}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /sessions", sessionHandler.Create)
	mux.HandleFunc("GET /sessions", sessionHandler.List)
	mux.HandleFunc("GET /sessions/{id}", sessionHandler.Get)
	mux.HandleFunc("POST /sessions/{id}/fixes", sessionHandler.Ingest)
	mux.HandleFunc("POST /sessions/{id}/stop", sessionHandler.Stop)
	mux.HandleFunc("POST /sessions/{id}/mute", sessionHandler.Mute)
	mux.HandleFunc("POST /sessions/{id}/status", sessionHandler.Status)
	mux.HandleFunc("GET /sessions/{id}/live", sessionHandler.Live)

	return loggingMiddleware(mux)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/muurk/rokuremote/internal/version"
	"github.com/muurk/rokuremote/internal/webui"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)

	r.Get("/health", s.handleHealth)

	// Discovery
	r.Get("/devices/discover", s.handleDiscover)

	// Per-device command endpoints
	r.Route("/device/{addr}", func(r chi.Router) {
		r.Get("/info", s.handleDeviceInfo)
		r.Get("/apps", s.handleApps)
		r.Get("/active", s.handleActiveApp)
		r.Get("/media", s.handleMediaState)
		r.Post("/keypress", s.handleKeypress)
		r.Post("/text", s.handleText)
		r.Post("/launch", s.handleLaunch)
		r.Get("/ws", s.handleDeviceWS)
	})

	// Embedded web remote
	r.Handle("/*", webui.Handler())

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]any{
		"status":  "ok",
		"version": version.Version,
	})
}

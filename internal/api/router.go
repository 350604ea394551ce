package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/discover", s.handleDiscover)

		r.Route("/lights", func(r chi.Router) {
			r.Get("/", s.handleListLights)

			r.Post("/toggle", s.handleToggle)
			r.Route("/brightness", func(r chi.Router) {
				r.Post("/increase", s.handleIncreaseBrightness)
				r.Post("/decrease", s.handleDecreaseBrightness)
			})
			r.Route("/temperature", func(r chi.Router) {
				r.Post("/increase", s.handleIncreaseTemperature)
				r.Post("/decrease", s.handleDecreaseTemperature)
			})
		})

		// WebSocket event stream
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"lights":  s.registry.Count(),
	})
}

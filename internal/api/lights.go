package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/lumen-home/lumen-core/internal/control"
)

// handleListLights returns the current registry contents.
func (s *Server) handleListLights(w http.ResponseWriter, _ *http.Request) {
	endpoints := s.registry.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"lights": endpoints,
		"count":  len(endpoints),
	})
}

// handleToggle flips the power state of every light.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	on, err := s.controller.Toggle(r.Context())
	if err != nil {
		s.writeControlError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"on": on})
}

// handleIncreaseBrightness raises every light's brightness by one step.
func (s *Server) handleIncreaseBrightness(w http.ResponseWriter, r *http.Request) {
	s.adjust(w, r, s.controller.IncreaseBrightness, "brightness")
}

// handleDecreaseBrightness lowers every light's brightness by one step.
func (s *Server) handleDecreaseBrightness(w http.ResponseWriter, r *http.Request) {
	s.adjust(w, r, s.controller.DecreaseBrightness, "brightness")
}

// handleIncreaseTemperature warms every light by one step.
func (s *Server) handleIncreaseTemperature(w http.ResponseWriter, r *http.Request) {
	s.adjust(w, r, s.controller.IncreaseTemperature, "temperature")
}

// handleDecreaseTemperature cools every light by one step.
func (s *Server) handleDecreaseTemperature(w http.ResponseWriter, r *http.Request) {
	s.adjust(w, r, s.controller.DecreaseTemperature, "temperature")
}

// adjust runs a brightness or temperature operation and writes the last
// computed value under the given field name.
func (s *Server) adjust(w http.ResponseWriter, r *http.Request, op func(context.Context) (int, error), field string) {
	value, err := op(r.Context())
	if err != nil {
		s.writeControlError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{field: value})
}

// writeControlError maps control package errors to HTTP responses.
//
// An empty registry is the caller's problem (run discovery first), a
// device that cannot be reached mid-operation is a gateway failure.
func (s *Server) writeControlError(w http.ResponseWriter, err error) {
	if errors.Is(err, control.ErrNoEndpoints) {
		writeNotFound(w, "no lights in the registry; run discovery first")
		return
	}

	var opErr *control.OperationError
	if errors.As(err, &opErr) {
		writeError(w, http.StatusBadGateway, ErrCodeUnreachable, opErr.Error())
		return
	}

	writeInternalError(w, "control operation failed")
}

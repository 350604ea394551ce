package api

import (
	"errors"
	"net/http"

	"github.com/lumen-home/lumen-core/internal/discovery"
)

// handleDiscover runs a discovery pass and replaces the registry contents.
//
// A partial result (timeout before the expected device count was reached)
// is still a usable result: the endpoints found stay in the registry and
// are returned with partial=true.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	endpoints, err := s.discoverer.Discover(r.Context())

	var partial *discovery.PartialError
	switch {
	case err == nil:
		// fall through to the success response

	case errors.As(err, &partial):
		s.hub.BroadcastDiscovery(endpoints)
		writeJSON(w, http.StatusOK, map[string]any{
			"lights":   endpoints,
			"count":    len(endpoints),
			"partial":  true,
			"expected": partial.Want,
		})
		return

	case errors.Is(err, discovery.ErrNoDevicesFound):
		writeNotFound(w, "no lights found on the network")
		return

	case errors.Is(err, discovery.ErrInvalidAddressList),
		errors.Is(err, discovery.ErrInvalidDeviceCount):
		writeBadRequest(w, err.Error())
		return

	default:
		s.logger.Error("discovery failed", "error", err)
		writeError(w, http.StatusBadGateway, ErrCodeInternal, "discovery failed")
		return
	}

	s.hub.BroadcastDiscovery(endpoints)
	writeJSON(w, http.StatusOK, map[string]any{
		"lights": endpoints,
		"count":  len(endpoints),
	})
}

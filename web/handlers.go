package web

import (
	"errors"
	"net/http"

	"github.com/anibaldeboni/zero-paper/soilbyte/store"
)

// handleSensorData handles GET /api/sensor-data - returns the stored reading verbatim
func (s *Server) handleSensorData(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Read(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.sendErrorResponse(w, "Sensor data not found", http.StatusNotFound)
			return
		}

		s.logger.WithError(err).Error("Failed to read sensor data")
		s.sendErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.sendRawJSON(w, data, http.StatusOK)
}

// handleMethodNotAllowed answers any non-GET method on a known route
func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	s.sendErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// handleNotFound answers unknown routes
func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.sendErrorResponse(w, "Not found", http.StatusNotFound)
}

package web

import (
	"encoding/json"
	"net/http"
)

// sendRawJSON writes an already encoded JSON body unchanged
func (s *Server) sendRawJSON(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		s.logger.WithError(err).Warn("Failed to write response")
	}
}

// sendJSONResponse sends a JSON response with proper headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	body, err := json.Marshal(data)
	if err != nil {
		s.logger.WithError(err).Error("Failed to encode JSON response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.sendRawJSON(w, body, statusCode)
}

// sendErrorResponse sends a JSON error response
func (s *Server) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	s.sendJSONResponse(w, ErrorResponse{Error: message}, statusCode)
}

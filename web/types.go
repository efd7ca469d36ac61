package web

import (
	"context"
	"net/http"
)

// SensorDataPath is the only route served
const SensorDataPath = "/api/sensor-data"

// SnapshotReader returns the stored reading exactly as it was written
type SnapshotReader interface {
	Read(ctx context.Context) ([]byte, error)
}

// ErrorResponse represents the JSON response for errors
type ErrorResponse struct {
	Error string `json:"error"`
}

// loggingResponseWriter wraps http.ResponseWriter to capture status codes
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

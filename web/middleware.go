package web

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

// loggingMiddleware logs all HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   lrw.statusCode,
			"duration": time.Since(start),
			"remote":   r.RemoteAddr,
		}).Info("request")
	})
}

// corsMiddleware allows any origin, without credentials
func corsMiddleware(next http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(next)
}

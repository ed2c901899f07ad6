package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// requestIDHeader carries the per-request ID back to the client.
const requestIDHeader = "X-Request-ID"

// requestID assigns each request a UUID, reusing the client's when present.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// logRequests logs one line per request with method, path, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"id", w.Header().Get(requestIDHeader),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

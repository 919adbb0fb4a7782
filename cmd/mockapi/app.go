package main

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/diewo77/stockchef/internal/handlers"
)

const requestIDHeader = "X-Request-ID"

// newHandler builds the full API handler with logging.
func newHandler(d handlers.Deps) http.Handler {
	return withLogging(handlers.NewRouter(d))
}

// statusRecorder keeps the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withLogging logs every request with its status, duration and request id.
// An incoming X-Request-ID is kept; otherwise a new one is generated.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %s %d %s", id, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// Package logging contains the request logging middleware of the API server.
package logging

import (
	"net/http"
)

// responseWriter wraps http.ResponseWriter to capture the status code that
// was written.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader ...
func (w *responseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.statusCode = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// StatusCode ...
func (w *responseWriter) StatusCode() int {
	return w.statusCode
}

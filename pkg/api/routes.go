package api

import (
	"encoding/json"
	"net/http"

	"github.com/golang/glog"
)

// SendNotFound is the router fallback for unknown paths.
func SendNotFound(w http.ResponseWriter, r *http.Request) {
	sendError(w, http.StatusNotFound, Error{
		Type:   "Error",
		Reason: "The requested resource doesn't exist",
	})
}

// SendMethodNotAllowed is the router fallback for known paths with an
// unsupported method.
func SendMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	sendError(w, http.StatusMethodNotAllowed, Error{
		Type:   "Error",
		Reason: "HTTP method not allowed for this resource",
	})
}

// SendServiceUnavailable responds with 503, used by readiness checks.
func SendServiceUnavailable(w http.ResponseWriter, r *http.Request, reason string) {
	sendError(w, http.StatusServiceUnavailable, Error{
		Type:   "Error",
		Reason: reason,
	})
}

func sendError(w http.ResponseWriter, code int, apiError Error) {
	data, err := json.Marshal(apiError)
	if err != nil {
		glog.Errorf("Can't marshal error response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

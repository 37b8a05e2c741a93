package shared

import (
	"encoding/json"
	"net/http"

	"github.com/golang/glog"
)

// WriteJSONResponse writes the payload as JSON with the given status code.
func WriteJSONResponse(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if payload != nil {
		response, err := json.Marshal(payload)
		if err != nil {
			glog.Errorf("Failed to marshal JSON response: %v", err)
			return
		}
		if _, err := w.Write(response); err != nil {
			glog.Errorf("Failed to write JSON response: %v", err)
		}
	}
}

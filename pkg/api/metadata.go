package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang/glog"
)

// Metadata is served at the API root and lists the available versions.
type Metadata struct {
	ID       string
	Versions []VersionMetadata
}

// ServeHTTP ...
func (m Metadata) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	basePath := fmt.Sprintf("/api/%s", m.ID)
	versions := make([]interface{}, 0, len(m.Versions))
	for _, v := range m.Versions {
		versions = append(versions, map[string]interface{}{
			"id":   v.ID,
			"kind": "APIVersion",
			"href": fmt.Sprintf("%s/%s", basePath, v.ID),
		})
	}

	writeMetadata(w, map[string]interface{}{
		"id":       m.ID,
		"kind":     "API",
		"href":     basePath,
		"versions": versions,
	})
}

// VersionMetadata is served at a version root and lists its collections.
type VersionMetadata struct {
	ID          string
	Collections []CollectionMetadata
}

// ServeHTTP ...
func (v VersionMetadata) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	basePath := fmt.Sprintf("/api/crm/%s", v.ID)
	collections := make([]interface{}, 0, len(v.Collections))
	for _, c := range v.Collections {
		collections = append(collections, map[string]interface{}{
			"id":   c.ID,
			"kind": c.Kind,
			"href": fmt.Sprintf("%s/%s", basePath, c.ID),
		})
	}

	writeMetadata(w, map[string]interface{}{
		"id":          v.ID,
		"kind":        "APIVersion",
		"href":        basePath,
		"collections": collections,
	})
}

func writeMetadata(w http.ResponseWriter, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		glog.Errorf("Can't marshal metadata response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_ServeHTTP(t *testing.T) {
	metadata := Metadata{
		ID: "crm",
		Versions: []VersionMetadata{
			{ID: "v1"},
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/api/crm", nil)
	w := httptest.NewRecorder()
	metadata.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "API", got["kind"])
	assert.Equal(t, "/api/crm", got["href"])

	versions, ok := got["versions"].([]interface{})
	require.True(t, ok)
	require.Len(t, versions, 1)
	version, ok := versions[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "v1", version["id"])
	assert.Equal(t, "/api/crm/v1", version["href"])
}

func TestVersionMetadata_ServeHTTP(t *testing.T) {
	metadata := VersionMetadata{
		ID: "v1",
		Collections: []CollectionMetadata{
			{ID: "contacts", Kind: "ContactList"},
			{ID: "billing_documents", Kind: "BillingDocumentList"},
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/api/crm/v1", nil)
	w := httptest.NewRecorder()
	metadata.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "APIVersion", got["kind"])
	assert.Equal(t, "/api/crm/v1", got["href"])

	collections, ok := got["collections"].([]interface{})
	require.True(t, ok)
	require.Len(t, collections, 2)
	first, ok := collections[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "contacts", first["id"])
	assert.Equal(t, "ContactList", first["kind"])
	assert.Equal(t, "/api/crm/v1/contacts", first["href"])
}

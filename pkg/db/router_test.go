package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistryYAML = `tenants:
  acme-photobooths:
    database: crm_data_acme
  shutterbug-events:
    database: crm_data_shutterbug
    host: dedicated-db.internal
    port: 5433
`

func writeTestRegistry(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tenant-registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testRegistryYAML), 0o600))
	return path
}

func TestLoadTenantRegistry(t *testing.T) {
	registry, err := LoadTenantRegistry(writeTestRegistry(t))
	require.NoError(t, err)
	require.Len(t, registry.Tenants, 2)

	assert.Equal(t, "crm_data_acme", registry.Tenants["acme-photobooths"].Database)
	assert.Empty(t, registry.Tenants["acme-photobooths"].Host)

	dedicated := registry.Tenants["shutterbug-events"]
	assert.Equal(t, "crm_data_shutterbug", dedicated.Database)
	assert.Equal(t, "dedicated-db.internal", dedicated.Host)
	assert.Equal(t, 5433, dedicated.Port)
}

func TestLoadTenantRegistry_missingFile(t *testing.T) {
	_, err := LoadTenantRegistry("does/not/exist.yaml")
	assert.Error(t, err)
}

func TestLoadTenantRegistry_malformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tenants: [not, a, map"), 0o600))
	_, err := LoadTenantRegistry(path)
	assert.Error(t, err)
}

func TestRouter_IsRegisteredAndTenantIDs(t *testing.T) {
	registry, err := LoadTenantRegistry(writeTestRegistry(t))
	require.NoError(t, err)
	router := NewRouter(registry, NewDatabaseConfig())

	assert.True(t, router.IsRegistered("acme-photobooths"))
	assert.False(t, router.IsRegistered("unknown"))
	assert.ElementsMatch(t, []string{"acme-photobooths", "shutterbug-events"}, router.TenantIDs())
}

func TestRouter_ForTenant_unregistered(t *testing.T) {
	router := NewMockRouter(NewMockConnectionFactory(nil), "acme-photobooths")
	_, err := router.ForTenant("unknown")
	assert.Error(t, err)
}

func TestRouter_ForTenant_reusesFactory(t *testing.T) {
	factory := NewMockConnectionFactory(nil)
	router := NewMockRouter(factory, "acme-photobooths")

	first, err := router.ForTenant("acme-photobooths")
	require.NoError(t, err)
	second, err := router.ForTenant("acme-photobooths")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

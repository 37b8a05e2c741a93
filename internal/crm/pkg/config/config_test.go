package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig_defaults(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "test-secret") // pragma: allowlist secret

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8000", cfg.APIServerBindAddress)
	assert.Equal(t, "localhost:8080", cfg.MetricsBindAddress)
	assert.Equal(t, "localhost:8083", cfg.HealthCheckBindAddress)
	assert.False(t, cfg.EnableHTTPS)
	assert.Equal(t, "config/tenant-registry.yaml", cfg.TenantRegistryFile)
	assert.Equal(t, 30*time.Second, cfg.WorkflowCacheTTL)
	assert.Equal(t, 720*time.Hour, cfg.ExecutionRetention)
	assert.Equal(t, "localhost", cfg.AppDatabase.Host)
	assert.Equal(t, 5432, cfg.DataDatabase.Port)
}

func TestGetConfig_environmentOverrides(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "test-secret") // pragma: allowlist secret
	t.Setenv("API_SERVER_BIND_ADDRESS", "0.0.0.0:9000")
	t.Setenv("WORKFLOW_CACHE_TTL", "2m")
	t.Setenv("APP_DATABASE_NAME", "crm_app")
	t.Setenv("APP_DATABASE_HOST", "app-db.internal")
	t.Setenv("DATA_DATABASE_HOST", "data-db.internal")
	t.Setenv("DATA_DATABASE_MAX_CONNECTIONS", "10")

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.APIServerBindAddress)
	assert.Equal(t, 2*time.Minute, cfg.WorkflowCacheTTL)
	assert.Equal(t, "crm_app", cfg.AppDatabase.Name)
	assert.Equal(t, "app-db.internal", cfg.AppDatabase.Host)
	assert.Equal(t, "data-db.internal", cfg.DataDatabase.Host)
	assert.Equal(t, 10, cfg.DataDatabase.MaxOpenConnections)
}

func TestGetConfig_secretFromFile(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "auth.secret")
	require.NoError(t, os.WriteFile(secretFile, []byte("file-secret\n"), 0o600))
	t.Setenv("AUTH_TOKEN_SECRET_FILE", secretFile)

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "file-secret", cfg.AuthTokenSecret)
}

func TestGetConfig_missingSecret(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "")
	t.Setenv("AUTH_TOKEN_SECRET_FILE", filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := GetConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_TOKEN_SECRET")
}

func TestGetConfig_httpsRequiresCertAndKey(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "test-secret") // pragma: allowlist secret
	t.Setenv("ENABLE_HTTPS", "true")

	_, err := GetConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTPS_CERT_FILE")
}

func TestDbConfig_GetDbConfig(t *testing.T) {
	dbConfig := DbConfig{
		Host:               "db.internal",
		Port:               5433,
		Name:               "crm_data",
		User:               "crm",
		Password:           "hunter2", // pragma: allowlist secret
		SSLMode:            "require",
		Debug:              true,
		MaxOpenConnections: 25,
	}

	cfg := dbConfig.GetDbConfig()
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "crm_data", cfg.Name)
	assert.Equal(t, "crm", cfg.Username)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, "require", cfg.SSLMode)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 25, cfg.MaxOpenConnections)
}

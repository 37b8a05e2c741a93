// Package config holds the runtime configuration of the CRM manager.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/shared"
)

// Config contains this application's runtime configuration.
type Config struct {
	APIServerBindAddress   string `env:"API_SERVER_BIND_ADDRESS" envDefault:"localhost:8000"`
	EnableHTTPS            bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	HTTPSCertFile          string `env:"HTTPS_CERT_FILE" envDefault:""`
	HTTPSKeyFile           string `env:"HTTPS_KEY_FILE" envDefault:""`
	MetricsBindAddress     string `env:"METRICS_BIND_ADDRESS" envDefault:"localhost:8080"`
	HealthCheckBindAddress string `env:"HEALTH_CHECK_BIND_ADDRESS" envDefault:"localhost:8083"`

	AuthTokenSecret     string `env:"AUTH_TOKEN_SECRET"`
	AuthTokenSecretFile string `env:"AUTH_TOKEN_SECRET_FILE" envDefault:"secrets/auth.secret"`

	// TenantRegistryFile maps tenant IDs to their data databases.
	TenantRegistryFile string `env:"TENANT_REGISTRY_FILE" envDefault:"config/tenant-registry.yaml"`

	WorkflowCacheTTL     time.Duration `env:"WORKFLOW_CACHE_TTL" envDefault:"30s"`
	WorkerRepeatInterval time.Duration `env:"WORKER_REPEAT_INTERVAL" envDefault:"30s"`
	ExecutionRetention   time.Duration `env:"EXECUTION_RETENTION" envDefault:"720h"`

	AppDatabase  DbConfig `envPrefix:"APP_"`
	DataDatabase DbConfig `envPrefix:"DATA_"`
}

// DbConfig carries the environment-sourced settings of one database
// connection. The data database settings act as the default for every
// tenant database, the registry supplies the per-tenant database name.
type DbConfig struct {
	HostFile           string `env:"DATABASE_HOST_FILE" envDefault:""`
	PortFile           string `env:"DATABASE_PORT_FILE" envDefault:""`
	NameFile           string `env:"DATABASE_NAME_FILE" envDefault:""`
	UserFile           string `env:"DATABASE_USER_FILE" envDefault:""`
	PasswordFile       string `env:"DATABASE_PASSWORD_FILE" envDefault:""`
	Host               string `env:"DATABASE_HOST" envDefault:"localhost"`
	Port               int    `env:"DATABASE_PORT" envDefault:"5432"`
	Name               string `env:"DATABASE_NAME" envDefault:"postgres"`
	User               string `env:"DATABASE_USER" envDefault:"postgres"`
	Password           string `env:"DATABASE_PASSWORD" envDefault:"postgres"`
	SSLMode            string `env:"DATABASE_SSL_MODE" envDefault:"disable"`
	Debug              bool   `env:"DATABASE_DEBUG" envDefault:"false"`
	MaxOpenConnections int    `env:"DATABASE_MAX_CONNECTIONS" envDefault:"50"`
}

// GetDbConfig maps the environment settings onto a db.DatabaseConfig.
func (d *DbConfig) GetDbConfig() *db.DatabaseConfig {
	cfg := db.NewDatabaseConfig()
	cfg.SSLMode = d.SSLMode
	cfg.Debug = d.Debug
	cfg.MaxOpenConnections = d.MaxOpenConnections
	cfg.HostFile = d.HostFile
	cfg.PortFile = d.PortFile
	cfg.NameFile = d.NameFile
	cfg.UsernameFile = d.UserFile
	cfg.PasswordFile = d.PasswordFile // pragma: allowlist secret
	cfg.Host = d.Host
	cfg.Port = d.Port
	cfg.Name = d.Name
	cfg.Username = d.User
	cfg.Password = d.Password // pragma: allowlist secret
	return cfg
}

// GetConfig retrieves the current runtime configuration from the environment
// and returns it.
func GetConfig() (*Config, error) {
	c := Config{}
	if err := env.Parse(&c); err != nil {
		return nil, errors.Wrap(err, "unable to parse runtime configuration from environment")
	}

	var configErrors *multierror.Error

	if err := shared.ReadFileValueString(c.AuthTokenSecretFile, &c.AuthTokenSecret); err != nil && c.AuthTokenSecret == "" {
		configErrors = multierror.Append(configErrors, errors.Wrap(err, "unable to read auth token secret file"))
	}
	if c.AuthTokenSecret == "" {
		configErrors = multierror.Append(configErrors, errors.New("AUTH_TOKEN_SECRET is not set and the secret file is empty"))
	}

	if c.EnableHTTPS && (c.HTTPSCertFile == "" || c.HTTPSKeyFile == "") {
		configErrors = multierror.Append(configErrors,
			errors.New("ENABLE_HTTPS is true but required variables HTTPS_CERT_FILE or HTTPS_KEY_FILE are empty"))
	}

	if c.TenantRegistryFile == "" {
		configErrors = multierror.Append(configErrors, errors.New("TENANT_REGISTRY_FILE is not set"))
	}

	if err := configErrors.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration settings")
	}
	return &c, nil
}

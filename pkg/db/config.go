// Package db manages database connections and migrations.
package db

import (
	"fmt"
	"strconv"

	"github.com/boothworks/crm-manager/pkg/shared"
)

// DatabaseConfig is the connection configuration for a single Postgres
// database. Credentials can be provided directly or through secret files,
// file contents win when both are set and the file exists.
type DatabaseConfig struct {
	Dialect            string
	SSLMode            string
	Debug              bool
	MaxOpenConnections int

	Host     string
	Port     int
	Name     string
	Username string
	Password string

	HostFile     string
	PortFile     string
	NameFile     string
	UsernameFile string
	PasswordFile string
}

// NewDatabaseConfig returns the default configuration.
func NewDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Dialect:            "postgres",
		SSLMode:            "disable",
		Debug:              false,
		MaxOpenConnections: 50,

		HostFile:     "secrets/db.host",
		PortFile:     "secrets/db.port",
		NameFile:     "secrets/db.name",
		UsernameFile: "secrets/db.user",
		PasswordFile: "secrets/db.password",
	}
}

// ReadFiles loads any credentials stored in secret files. Missing files are
// ignored when the corresponding value is already set.
func (c *DatabaseConfig) ReadFiles() error {
	if err := shared.ReadFileValueString(c.HostFile, &c.Host); err != nil && c.Host == "" {
		return fmt.Errorf("reading db host: %w", err)
	}
	if err := shared.ReadFileValueString(c.NameFile, &c.Name); err != nil && c.Name == "" {
		return fmt.Errorf("reading db name: %w", err)
	}
	if err := shared.ReadFileValueString(c.UsernameFile, &c.Username); err != nil && c.Username == "" {
		return fmt.Errorf("reading db username: %w", err)
	}
	if err := shared.ReadFileValueString(c.PasswordFile, &c.Password); err != nil && c.Password == "" {
		return fmt.Errorf("reading db password: %w", err)
	}
	var portStr string
	if err := shared.ReadFileValueString(c.PortFile, &portStr); err == nil && portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("parsing db port from %s: %w", c.PortFile, err)
		}
		c.Port = port
	} else if c.Port == 0 {
		c.Port = 5432
	}
	return nil
}

// ConnectionString renders the DSN, without the password when hidePassword
// is requested.
func (c *DatabaseConfig) ConnectionString(hidePassword bool) string {
	password := c.Password
	if hidePassword {
		password = "<REDACTED>" // pragma: allowlist secret
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, password, c.Name, c.SSLMode,
	)
}

// LogSafeConnectionString ...
func (c *DatabaseConfig) LogSafeConnectionString() string {
	return c.ConnectionString(true)
}

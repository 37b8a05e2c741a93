package db

import (
	"fmt"
	"os"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// TenantRegistry maps tenant IDs to the database holding their business
// data. The app database (tenants, users, workflow definitions) is separate
// from the per-tenant data databases.
type TenantRegistry struct {
	// Tenants maps tenant ID to the database name on the shared data host.
	Tenants map[string]TenantDatabase `json:"tenants"`
}

// TenantDatabase describes where one tenant's data lives.
type TenantDatabase struct {
	Database string `json:"database"`
	// Host and Port override the default data host when the tenant has a
	// dedicated instance. Empty means use the shared host.
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// LoadTenantRegistry reads the tenant registry YAML file.
func LoadTenantRegistry(path string) (*TenantRegistry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading tenant registry %s", path)
	}
	registry := &TenantRegistry{}
	if err := yaml.Unmarshal(raw, registry); err != nil {
		return nil, errors.Wrapf(err, "parsing tenant registry %s", path)
	}
	return registry, nil
}

// Router resolves the connection factory for a tenant's data database.
// Connections are opened lazily on first use and reused afterwards.
type Router struct {
	registry    *TenantRegistry
	defaultConf *DatabaseConfig

	mu        sync.Mutex
	factories map[string]*ConnectionFactory
	cleanups  []func()
}

// NewRouter builds a Router. defaultConf carries host, credentials and pool
// settings shared by all tenant databases, the registry supplies the
// database name (and optional host override) per tenant.
func NewRouter(registry *TenantRegistry, defaultConf *DatabaseConfig) *Router {
	return &Router{
		registry:    registry,
		defaultConf: defaultConf,
		factories:   map[string]*ConnectionFactory{},
	}
}

// IsRegistered reports whether the tenant has a data database.
func (r *Router) IsRegistered(tenantID string) bool {
	_, ok := r.registry.Tenants[tenantID]
	return ok
}

// ForTenant returns the connection factory for the tenant's data database.
func (r *Router) ForTenant(tenantID string) (*ConnectionFactory, error) {
	tenantDB, ok := r.registry.Tenants[tenantID]
	if !ok {
		return nil, fmt.Errorf("tenant %q is not registered", tenantID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if factory, ok := r.factories[tenantID]; ok {
		return factory, nil
	}

	conf := *r.defaultConf
	conf.Name = tenantDB.Database
	if tenantDB.Host != "" {
		conf.Host = tenantDB.Host
	}
	if tenantDB.Port != 0 {
		conf.Port = tenantDB.Port
	}

	glog.V(1).Infof("opening data database for tenant %s (%s)", tenantID, conf.LogSafeConnectionString())
	factory, cleanup := NewConnectionFactory(&conf)
	r.factories[tenantID] = factory
	r.cleanups = append(r.cleanups, cleanup)
	return factory, nil
}

// NewMockRouter returns a Router whose registered tenants all resolve to
// the given factory. Only for use in tests.
func NewMockRouter(factory *ConnectionFactory, tenantIDs ...string) *Router {
	registry := &TenantRegistry{Tenants: map[string]TenantDatabase{}}
	router := NewRouter(registry, NewDatabaseConfig())
	for _, id := range tenantIDs {
		registry.Tenants[id] = TenantDatabase{Database: id}
		router.factories[id] = factory
	}
	return router
}

// TenantIDs lists all registered tenants. Used by migrations and workers
// that iterate every tenant database.
func (r *Router) TenantIDs() []string {
	ids := make([]string, 0, len(r.registry.Tenants))
	for id := range r.registry.Tenants {
		ids = append(ids, id)
	}
	return ids
}

// Close closes all tenant connection pools opened so far.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cleanup := range r.cleanups {
		cleanup()
	}
	r.cleanups = nil
	r.factories = map[string]*ConnectionFactory{}
}

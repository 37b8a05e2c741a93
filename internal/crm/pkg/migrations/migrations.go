// Package migrations lives in its own isolated package to prevent issues
// with model changes. Migration structs re-declare the model fields as they
// were at the time of the migration, never reference the live dbapi types.
package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/boothworks/crm-manager/pkg/db"
)

// AppMigrations is the migration set for the app database.
func AppMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		addTenants(),
	}
}

// TenantMigrations is the migration set applied to every tenant data
// database.
func TenantMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		addCRMCoreTables(),
		addEventTables(),
		addBillingTables(),
		addSupportTables(),
		addWorkflowTables(),
		addReminderFlagToEvents(),
		addDiscountToLineItems(),
	}
}

// NewAppMigration builds the migration runner for the app database.
func NewAppMigration(dbConfig *db.DatabaseConfig) (*db.Migration, func(), error) {
	return db.NewMigration(dbConfig, gormigrate.DefaultOptions, AppMigrations())
}

// MigrateTenantDatabases applies the tenant migration set to every data
// database listed in the registry. Tenant databases are independent, so a
// few are migrated in parallel.
func MigrateTenantDatabases(router *db.Router) error {
	var group errgroup.Group
	group.SetLimit(4)
	for _, tenantID := range router.TenantIDs() {
		tenantID := tenantID
		group.Go(func() error {
			factory, err := router.ForTenant(tenantID)
			if err != nil {
				return errors.Wrapf(err, "resolving data database for tenant %s", tenantID)
			}
			glog.Infof("migrating data database for tenant %s", tenantID)
			m := gormigrate.New(factory.New(), gormigrate.DefaultOptions, TenantMigrations())
			if err := m.Migrate(); err != nil {
				return errors.Wrapf(err, "migrating data database for tenant %s", tenantID)
			}
			return nil
		})
	}
	return group.Wait()
}

// RollbackTenantDatabasesLast rolls back the most recent tenant migration on
// every data database listed in the registry.
func RollbackTenantDatabasesLast(router *db.Router) error {
	var group errgroup.Group
	group.SetLimit(4)
	for _, tenantID := range router.TenantIDs() {
		tenantID := tenantID
		group.Go(func() error {
			factory, err := router.ForTenant(tenantID)
			if err != nil {
				return errors.Wrapf(err, "resolving data database for tenant %s", tenantID)
			}
			glog.Infof("rolling back data database for tenant %s", tenantID)
			m := gormigrate.New(factory.New(), gormigrate.DefaultOptions, TenantMigrations())
			if err := m.RollbackLast(); err != nil {
				return errors.Wrapf(err, "rolling back data database for tenant %s", tenantID)
			}
			return nil
		})
	}
	return group.Wait()
}

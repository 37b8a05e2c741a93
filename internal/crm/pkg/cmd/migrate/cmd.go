// Package migrate ...
package migrate

import (
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/boothworks/crm-manager/internal/crm/pkg/config"
	"github.com/boothworks/crm-manager/internal/crm/pkg/migrations"
	"github.com/boothworks/crm-manager/pkg/db"
)

// NewMigrateCommand ...
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run the database migrations",
		Long:  "Migrate the app database and every tenant data database listed in the registry.",
		Run:   runMigrate,
	}
	cmd.AddCommand(newRollbackCommand())
	return cmd
}

func newRollbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the last database migration",
		Long:  "Roll back the most recent migration on the app database and on every tenant data database listed in the registry.",
		Run:   runRollback,
	}
}

func runMigrate(cmd *cobra.Command, args []string) {
	appMigration, cleanup, router := setupMigration()
	defer cleanup()
	defer router.Close()

	glog.Info("migrating app database")
	appMigration.Migrate()

	if err := migrations.MigrateTenantDatabases(router); err != nil {
		glog.Fatalf("Unable to migrate tenant databases: %s", err)
	}
	glog.Infof("migrations complete, %d applied to app database", appMigration.CountMigrationsApplied())
}

func runRollback(cmd *cobra.Command, args []string) {
	appMigration, cleanup, router := setupMigration()
	defer cleanup()
	defer router.Close()

	glog.Info("rolling back last app database migration")
	appMigration.RollbackLast()

	if err := migrations.RollbackTenantDatabasesLast(router); err != nil {
		glog.Fatalf("Unable to roll back tenant databases: %s", err)
	}
	glog.Infof("rollback complete, %d migrations remain on app database", appMigration.CountMigrationsApplied())
}

func setupMigration() (*db.Migration, func(), *db.Router) {
	cfg, err := config.GetConfig()
	if err != nil {
		glog.Fatalf("Unable to load configuration: %s", err)
	}

	appMigration, cleanup, err := migrations.NewAppMigration(cfg.AppDatabase.GetDbConfig())
	if err != nil {
		glog.Fatalf("Unable to build app database migration: %s", err)
	}

	dataDBConfig := cfg.DataDatabase.GetDbConfig()
	if err := dataDBConfig.ReadFiles(); err != nil {
		glog.Fatalf("Unable to read data database secrets: %s", err)
	}
	registry, err := db.LoadTenantRegistry(cfg.TenantRegistryFile)
	if err != nil {
		glog.Fatalf("Unable to load tenant registry: %s", err)
	}
	router := db.NewRouter(registry, dataDBConfig)

	return appMigration, cleanup, router
}

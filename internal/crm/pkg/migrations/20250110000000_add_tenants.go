package migrations

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/pkg/db"
)

func addTenants() *gormigrate.Migration {
	type Tenant struct {
		db.Model
		Name         string `gorm:"uniqueIndex"`
		Subdomain    string `gorm:"uniqueIndex"`
		Status       string `gorm:"index"`
		ContactEmail string
		Plan         string
	}

	return &gormigrate.Migration{
		ID: "20250110000000",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&Tenant{}); err != nil {
				return fmt.Errorf("creating tenants table in migration 20250110000000: %w", err)
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropTable(&Tenant{}); err != nil {
				return fmt.Errorf("rolling back tenants table in migration 20250110000000: %w", err)
			}
			return nil
		},
	}
}

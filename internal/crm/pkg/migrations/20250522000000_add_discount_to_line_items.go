package migrations

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/pkg/db"
)

func addDiscountToLineItems() *gormigrate.Migration {
	type LineItem struct {
		db.Model
		TenantID      string `gorm:"index"`
		DocumentID    string `gorm:"index"`
		Position      int
		Description   string
		Quantity      int64
		UnitCents     int64
		DiscountCents int64
		TaxRateBps    int64
		AmountCents   int64
	}

	return &gormigrate.Migration{
		ID: "20250522000000",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&LineItem{}); err != nil {
				return fmt.Errorf("adding new column DiscountCents in migration 20250522000000: %w", err)
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropColumn(&LineItem{}, "DiscountCents"); err != nil {
				return fmt.Errorf("rolling back new column DiscountCents in migration 20250522000000: %w", err)
			}
			return nil
		},
	}
}

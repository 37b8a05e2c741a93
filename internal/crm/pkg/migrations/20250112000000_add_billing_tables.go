package migrations

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/pkg/db"
)

func addBillingTables() *gormigrate.Migration {
	type BillingDocument struct {
		db.Model
		TenantID      string `gorm:"index"`
		Kind          string `gorm:"index"`
		Number        string `gorm:"index"`
		Status        string `gorm:"index"`
		AccountID     string `gorm:"index"`
		EventID       string
		IssueDate     time.Time
		DueDate       sql.NullTime
		Currency      string
		Notes         string
		SubtotalCents int64
		TaxTotalCents int64
		TotalCents    int64
	}

	type LineItem struct {
		db.Model
		TenantID    string `gorm:"index"`
		DocumentID  string `gorm:"index"`
		Position    int
		Description string
		Quantity    int64
		UnitCents   int64
		TaxRateBps  int64
		AmountCents int64
	}

	return &gormigrate.Migration{
		ID: "20250112000000",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&BillingDocument{}, &LineItem{}); err != nil {
				return fmt.Errorf("creating billing tables in migration 20250112000000: %w", err)
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropTable(&LineItem{}, &BillingDocument{}); err != nil {
				return fmt.Errorf("rolling back billing tables in migration 20250112000000: %w", err)
			}
			return nil
		},
	}
}

package migrations

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/pkg/db"
)

func addEventTables() *gormigrate.Migration {
	type Event struct {
		db.Model
		TenantID      string `gorm:"index"`
		Name          string
		EventType     string `gorm:"index"`
		Status        string `gorm:"index"`
		AccountID     string `gorm:"index"`
		ContactID     string
		OpportunityID string
		VenueName     string
		VenueAddress  string
		StartTime     time.Time `gorm:"index"`
		EndTime       time.Time
		GuestCount    int
		Notes         string
	}

	type StaffAssignment struct {
		db.Model
		TenantID   string `gorm:"index"`
		EventID    string `gorm:"index"`
		StaffName  string
		StaffEmail string `gorm:"index"`
		Role       string
		StartTime  time.Time
		EndTime    time.Time
	}

	type InventoryItem struct {
		db.Model
		TenantID     string `gorm:"index"`
		Name         string
		SKU          string `gorm:"index"`
		SerialNumber string `gorm:"index"`
		Category     string
		Status       string `gorm:"index"`
		PurchaseDate sql.NullTime
		Notes        string
	}

	return &gormigrate.Migration{
		ID: "20250110000002",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&Event{}, &StaffAssignment{}, &InventoryItem{}); err != nil {
				return fmt.Errorf("creating event tables in migration 20250110000002: %w", err)
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropTable(&InventoryItem{}, &StaffAssignment{}, &Event{}); err != nil {
				return fmt.Errorf("rolling back event tables in migration 20250110000002: %w", err)
			}
			return nil
		},
	}
}

package migrations

import (
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/pkg/db"
)

func addReminderFlagToEvents() *gormigrate.Migration {
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
		// ReminderTaskCreated marks events whose pre-event task has
		// already been generated. Defaults to false for existing rows.
		ReminderTaskCreated bool
	}

	return &gormigrate.Migration{
		ID: "20250310000000",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&Event{}); err != nil {
				return fmt.Errorf("adding new column ReminderTaskCreated in migration 20250310000000: %w", err)
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropColumn(&Event{}, "ReminderTaskCreated"); err != nil {
				return fmt.Errorf("rolling back new column ReminderTaskCreated in migration 20250310000000: %w", err)
			}
			return nil
		},
	}
}

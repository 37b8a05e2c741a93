package migrations

import (
	"database/sql"
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/pkg/db"
)

func addSupportTables() *gormigrate.Migration {
	type Ticket struct {
		db.Model
		TenantID       string `gorm:"index"`
		Subject        string
		Description    string
		Status         string `gorm:"index"`
		Priority       string `gorm:"index"`
		RequesterEmail string
		AccountID      string `gorm:"index"`
		EventID        string
		AssignedTo     string
	}

	type Task struct {
		db.Model
		TenantID    string `gorm:"index"`
		Title       string
		Description string
		Status      string `gorm:"index"`
		DueAt       sql.NullTime
		AssignedTo  string
		EntityType  string `gorm:"index"`
		EntityID    string `gorm:"index"`
		TemplateID  string
	}

	type TaskTemplate struct {
		db.Model
		TenantID    string `gorm:"index"`
		Name        string
		Title       string
		Description string
		DueInDays   int
		AssignedTo  string
	}

	type Notification struct {
		db.Model
		TenantID       string `gorm:"index"`
		RecipientEmail string
		Subject        string
		Body           string
		Status         string `gorm:"index"`
		EntityType     string
		EntityID       string
		SentAt         sql.NullTime
	}

	return &gormigrate.Migration{
		ID: "20250115000000",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&Ticket{}, &Task{}, &TaskTemplate{}, &Notification{}); err != nil {
				return fmt.Errorf("creating support tables in migration 20250115000000: %w", err)
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropTable(&Notification{}, &TaskTemplate{}, &Task{}, &Ticket{}); err != nil {
				return fmt.Errorf("rolling back support tables in migration 20250115000000: %w", err)
			}
			return nil
		},
	}
}

package migrations

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/pkg/db"
)

func addWorkflowTables() *gormigrate.Migration {
	type Workflow struct {
		db.Model
		TenantID     string `gorm:"index"`
		Name         string
		Enabled      bool   `gorm:"index"`
		EntityType   string `gorm:"index"`
		TriggerEvent string `gorm:"index"`
		MatchFilter  datatypes.JSON
	}

	type WorkflowAction struct {
		db.Model
		TenantID   string `gorm:"index"`
		WorkflowID string `gorm:"index"`
		Position   int
		Kind       string
		Params     datatypes.JSON
	}

	type WorkflowExecution struct {
		db.Model
		TenantID      string `gorm:"index"`
		WorkflowID    string `gorm:"index"`
		EntityType    string
		EntityID      string `gorm:"index"`
		TriggerEvent  string
		Status        string `gorm:"index"`
		ActionResults datatypes.JSON
		ErrorMessage  string
		StartedAt     time.Time
		CompletedAt   sql.NullTime
	}

	return &gormigrate.Migration{
		ID: "20250120000000",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&Workflow{}, &WorkflowAction{}, &WorkflowExecution{}); err != nil {
				return fmt.Errorf("creating workflow tables in migration 20250120000000: %w", err)
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropTable(&WorkflowExecution{}, &WorkflowAction{}, &Workflow{}); err != nil {
				return fmt.Errorf("rolling back workflow tables in migration 20250120000000: %w", err)
			}
			return nil
		},
	}
}

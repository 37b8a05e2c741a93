package migrations

import (
	"database/sql"
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/pkg/db"
)

func addCRMCoreTables() *gormigrate.Migration {
	type Contact struct {
		db.Model
		TenantID  string `gorm:"index"`
		AccountID string `gorm:"index"`
		FirstName string
		LastName  string
		Email     string `gorm:"index"`
		Phone     string
		Title     string
		Notes     string
	}

	type Account struct {
		db.Model
		TenantID       string `gorm:"index"`
		Name           string `gorm:"index"`
		Website        string
		Phone          string
		Industry       string
		BillingAddress string
	}

	type Lead struct {
		db.Model
		TenantID               string `gorm:"index"`
		FirstName              string
		LastName               string
		Email                  string `gorm:"index"`
		Phone                  string
		Company                string
		Source                 string
		Status                 string `gorm:"index"`
		Notes                  string
		ConvertedAccountID     string
		ConvertedContactID     string
		ConvertedOpportunityID string
	}

	type Opportunity struct {
		db.Model
		TenantID    string `gorm:"index"`
		Name        string
		AccountID   string `gorm:"index"`
		ContactID   string
		Stage       string `gorm:"index"`
		AmountCents int64
		Probability int
		CloseDate   sql.NullTime
		Notes       string
	}

	return &gormigrate.Migration{
		ID: "20250110000001",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&Contact{}, &Account{}, &Lead{}, &Opportunity{}); err != nil {
				return fmt.Errorf("creating core CRM tables in migration 20250110000001: %w", err)
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropTable(&Opportunity{}, &Lead{}, &Account{}, &Contact{}); err != nil {
				return fmt.Errorf("rolling back core CRM tables in migration 20250110000001: %w", err)
			}
			return nil
		},
	}
}

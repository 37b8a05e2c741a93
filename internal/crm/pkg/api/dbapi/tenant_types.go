// Package dbapi holds the gorm models of the CRM. Tenant business data
// lives in the per-tenant data database, the Tenant model itself lives in
// the app database.
package dbapi

import (
	"github.com/boothworks/crm-manager/pkg/api"
)

// Tenant is a customer organization. Stored in the app database.
type Tenant struct {
	api.Meta
	Name         string `gorm:"uniqueIndex"`
	Subdomain    string `gorm:"uniqueIndex"`
	Status       string `gorm:"index"`
	ContactEmail string
	Plan         string
}

// TenantList ...
type TenantList []*Tenant

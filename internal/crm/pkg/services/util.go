package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/pkg/auth"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
)

// tenantConnection resolves the data database session for the tenant carried
// by the request context. Requests for unregistered tenants fail before any
// query runs.
func tenantConnection(ctx context.Context, router *db.Router) (*gorm.DB, string, *errors.ServiceError) {
	tenantID, svcErr := auth.TenantIDFromContext(ctx)
	if svcErr != nil {
		return nil, "", svcErr
	}
	factory, err := router.ForTenant(tenantID)
	if err != nil {
		return nil, "", errors.TenantNotRegistered("no data database registered for tenant %s", tenantID)
	}
	return factory.New(), tenantID, nil
}

// applySearch narrows a query with a case-insensitive substring match over the
// given columns. An empty search term leaves the query untouched.
func applySearch(dbConn *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return dbConn
	}
	clauses := make([]string, 0, len(columns))
	values := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		clauses = append(clauses, fmt.Sprintf("%s ILIKE ?", column))
		values = append(values, "%"+search+"%")
	}
	return dbConn.Where(strings.Join(clauses, " OR "), values...)
}

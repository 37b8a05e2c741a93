package migrations

import (
	"sort"
	"testing"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func migrationIDs(t *testing.T, migrations []*gormigrate.Migration) []string {
	t.Helper()
	seen := map[string]bool{}
	result := make([]string, 0, len(migrations))
	for _, m := range migrations {
		require.NotEmpty(t, m.ID)
		require.False(t, seen[m.ID], "duplicate migration id %s", m.ID)
		require.NotNil(t, m.Migrate, "migration %s has no migrate func", m.ID)
		require.NotNil(t, m.Rollback, "migration %s has no rollback func", m.ID)
		seen[m.ID] = true
		result = append(result, m.ID)
	}
	return result
}

func TestMigrationSets(t *testing.T) {
	appIDs := migrationIDs(t, AppMigrations())
	tenantIDs := migrationIDs(t, TenantMigrations())

	require.NotEmpty(t, appIDs)
	require.NotEmpty(t, tenantIDs)

	// IDs are timestamps, applied in ascending order.
	assert.True(t, sort.StringsAreSorted(appIDs), "app migrations out of order: %v", appIDs)
	assert.True(t, sort.StringsAreSorted(tenantIDs), "tenant migrations out of order: %v", tenantIDs)

	// The app and tenant databases never share a migration.
	for _, appID := range appIDs {
		assert.NotContains(t, tenantIDs, appID)
	}
}

package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMigrateCommand(t *testing.T) {
	cmd := NewMigrateCommand()
	assert.Equal(t, "migrate", cmd.Use)
	require.NotNil(t, cmd.Run)

	rollback, _, err := cmd.Find([]string{"rollback"})
	require.NoError(t, err)
	assert.Equal(t, "rollback", rollback.Use)
	require.NotNil(t, rollback.Run)
}

package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsStructWithoutPointers(t *testing.T) {
	type withPointer struct {
		Name string
		Due  *time.Time
	}
	type withoutPointers struct {
		Name      string
		Amount    int64
		ClosedAt  sql.NullTime
		Labels    []string
		CreatedAt time.Time
	}

	assert.False(t, IsStructWithoutPointers(withPointer{}))
	assert.False(t, IsStructWithoutPointers(&withPointer{}))
	assert.True(t, IsStructWithoutPointers(withoutPointers{}))
	assert.True(t, IsStructWithoutPointers(&withoutPointers{}))

	// non-struct inputs
	assert.False(t, IsStructWithoutPointers("not a struct"))
	assert.False(t, IsStructWithoutPointers(42))
}

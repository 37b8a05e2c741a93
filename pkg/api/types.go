// Package api contains types shared between the database models and the
// JSON resources served by the API.
package api

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewID produces a fresh entity ID.
func NewID() string {
	return uuid.NewString()
}

// Meta is embedded by every persisted model. Soft deletion is used
// throughout, a deleted row stays in the table with deleted_at set.
type Meta struct {
	ID        string `gorm:"primary_key"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// PagingMeta carries pagination results of a List call back to the handler.
type PagingMeta struct {
	Page  int
	Size  int
	Total int
}

// CollectionMetadata is the metadata served for a top level API collection.
type CollectionMetadata struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

package model

import (
	"github.com/google/uuid"
)

// Tag is a global classifier shared across all users' notes. Uniqueness of
// the name is case-insensitive (enforced by an index on lower(name)), but the
// stored value preserves the casing it was first created with.
type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"uniqueIndex;not null"`

	Notes []Note `gorm:"many2many:note_tags"`
}

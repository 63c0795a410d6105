package model

import (
	"time"

	"github.com/google/uuid"
)

// TodoList is the ownership root for its tasks: a task's effective owner is
// always resolved through its parent list, never stored on the task itself.
type TodoList struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;size:100"`
	Description string
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner User   `gorm:"foreignKey:OwnerID"`
	Tasks []Task `gorm:"foreignKey:TodoListID"`
}

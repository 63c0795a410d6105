package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses. Any status is reachable from any other; COMPLETED and
// CANCELLED are not terminal.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Task priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TodoListID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:'PENDING';check:status IN ('PENDING', 'IN_PROGRESS', 'COMPLETED', 'CANCELLED')"`
	Priority    string `gorm:"not null;default:'MEDIUM';check:priority IN ('LOW', 'MEDIUM', 'HIGH')"`
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	TodoList TodoList `gorm:"foreignKey:TodoListID"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

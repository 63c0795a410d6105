package service

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError reports that the target entity does not exist. Existence is
// always checked before ownership, so a missing entity yields this error even
// when the caller would also have been unauthorized.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// UnauthorizedError reports that the acting user is not allowed to perform the
// action on the target entity.
type UnauthorizedError struct {
	Action string
	Entity string
	ID     uuid.UUID
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("not authorized to %s %s %s", e.Action, e.Entity, e.ID)
}

// AlreadyExistsError reports a uniqueness conflict on explicit creation.
type AlreadyExistsError struct {
	Field string
	Value string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Field, e.Value)
}

// InvalidInputError reports a payload that violates a domain invariant.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

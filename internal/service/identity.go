package service

import "github.com/google/uuid"

// Identity is the acting identity resolved by the transport layer. The core
// never authenticates; it only consumes an already-resolved identity.
type Identity struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// authorize permits the operation when the acting user is the resource owner.
// The admin capability deliberately does not bypass this check; it applies
// only to the user-management boundary.
func authorize(action, entity string, id, actingUserID, ownerID uuid.UUID) error {
	if actingUserID != ownerID {
		return &UnauthorizedError{Action: action, Entity: entity, ID: id}
	}
	return nil
}

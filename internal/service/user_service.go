package service

import (
	"context"

	"github.com/google/uuid"

	"productivity/internal/repository"
)

// UserService is the user-management boundary. It is the only place the admin
// capability on the resolved identity is consulted.
type UserService struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserService(userRepo repository.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID returns the user's profile; admins may read any profile, everyone
// else only their own.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID, acting Identity) (UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return UserDTO{}, err
	}
	if user == nil {
		return UserDTO{}, &NotFoundError{Entity: "user", ID: id}
	}
	if !acting.IsAdmin && acting.UserID != id {
		return UserDTO{}, &UnauthorizedError{Action: "access", Entity: "user", ID: id}
	}
	return userToDTO(user), nil
}

// List returns all users; admin only.
func (s *UserService) List(ctx context.Context, acting Identity) ([]UserDTO, error) {
	if !acting.IsAdmin {
		return nil, &UnauthorizedError{Action: "list", Entity: "user", ID: acting.UserID}
	}

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = userToDTO(&users[i])
	}
	return dtos, nil
}

// Update changes the user's display name; admin or self.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, acting Identity, name string) (UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return UserDTO{}, err
	}
	if user == nil {
		return UserDTO{}, &NotFoundError{Entity: "user", ID: id}
	}
	if !acting.IsAdmin && acting.UserID != id {
		return UserDTO{}, &UnauthorizedError{Action: "update", Entity: "user", ID: id}
	}

	if name != "" {
		user.Name = name
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return UserDTO{}, err
	}
	return userToDTO(user), nil
}

// Delete removes the account; admin or self.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, acting Identity) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return &NotFoundError{Entity: "user", ID: id}
	}
	if !acting.IsAdmin && acting.UserID != id {
		return &UnauthorizedError{Action: "delete", Entity: "user", ID: id}
	}
	return s.userRepo.Delete(ctx, id)
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"productivity/internal/model"
	"productivity/internal/repository"
)

// TagService owns global tag identity. Tags have no owner and are shared
// across all users' notes; names are unique case-insensitively.
type TagService struct {
	tagRepo *repository.TagRepository
}

func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// Create explicitly creates a tag, rejecting case-insensitive duplicates.
func (s *TagService) Create(ctx context.Context, name string) (TagDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return TagDTO{}, &InvalidInputError{Field: "name", Reason: "must not be empty"}
	}

	existing, err := s.tagRepo.FindByName(ctx, name)
	if err != nil {
		return TagDTO{}, err
	}
	if existing != nil {
		return TagDTO{}, &AlreadyExistsError{Field: "tag name", Value: name}
	}

	tag := &model.Tag{ID: uuid.New(), Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return TagDTO{}, err
	}
	return tagToDTO(tag), nil
}

// GetOrCreate resolves a tag name to its tag, creating it with the caller's
// casing when absent. The unique index on lower(name) makes the insert race
// safe: a conflicting concurrent insert surfaces as an error here, after which
// the winning row is looked up instead.
func (s *TagService) GetOrCreate(ctx context.Context, name string) (model.Tag, error) {
	existing, err := s.tagRepo.FindByName(ctx, name)
	if err != nil {
		return model.Tag{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	tag := &model.Tag{ID: uuid.New(), Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		// Lost the race; the other caller's tag is the canonical one.
		winner, lookupErr := s.tagRepo.FindByName(ctx, name)
		if lookupErr == nil && winner != nil {
			return *winner, nil
		}
		return model.Tag{}, err
	}
	return *tag, nil
}

// ListForUser returns the tags that appear on at least one note owned by the
// user.
func (s *TagService) ListForUser(ctx context.Context, userID uuid.UUID) ([]TagDTO, error) {
	tags, err := s.tagRepo.GetByUserNotes(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]TagDTO, len(tags))
	for i := range tags {
		dtos[i] = tagToDTO(&tags[i])
	}
	return dtos, nil
}

// Delete removes a tag, detaching it from every note that references it across
// all owners. The caller only needs to own at least one note carrying the tag,
// not all of them.
func (s *TagService) Delete(ctx context.Context, id, actingUserID uuid.UUID) error {
	if _, err := s.tagRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrTagNotFound {
			return &NotFoundError{Entity: "tag", ID: id}
		}
		return err
	}

	owned, err := s.tagRepo.CountNotesOwnedBy(ctx, id, actingUserID)
	if err != nil {
		return err
	}
	if owned == 0 {
		return &UnauthorizedError{Action: "delete", Entity: "tag", ID: id}
	}

	if err := s.tagRepo.DeleteWithDetach(ctx, id); err != nil {
		if err == repository.ErrTagNotFound {
			return &NotFoundError{Entity: "tag", ID: id}
		}
		return err
	}
	return nil
}

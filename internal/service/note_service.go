package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"productivity/internal/model"
	"productivity/internal/repository"
)

// NoteService owns notes and their tag memberships, scoped to the note's
// owner for every read and mutation.
type NoteService struct {
	noteRepo *repository.NoteRepository
	tags     *TagService
}

func NewNoteService(noteRepo *repository.NoteRepository, tags *TagService) *NoteService {
	return &NoteService{noteRepo: noteRepo, tags: tags}
}

// Create stores a new note for the owner, resolving each tag name through the
// registry. Tag names that differ only by case collapse to one tag.
func (s *NoteService) Create(ctx context.Context, ownerID uuid.UUID, title, content string, tagNames []string) (NoteDTO, error) {
	if strings.TrimSpace(title) == "" {
		return NoteDTO{}, &InvalidInputError{Field: "title", Reason: "must not be empty"}
	}

	tags, err := s.resolveTags(ctx, tagNames)
	if err != nil {
		return NoteDTO{}, err
	}

	note := &model.Note{
		ID:      uuid.New(),
		Title:   title,
		Content: content,
		OwnerID: ownerID,
		Tags:    tags,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return NoteDTO{}, err
	}
	return noteToDTO(note), nil
}

func (s *NoteService) GetByID(ctx context.Context, id, actingUserID uuid.UUID) (NoteDTO, error) {
	note, err := s.getOwned(ctx, id, actingUserID, "access")
	if err != nil {
		return NoteDTO{}, err
	}
	return noteToDTO(note), nil
}

func (s *NoteService) ListForUser(ctx context.Context, userID uuid.UUID, page PageRequest) (Page[NoteDTO], error) {
	page = page.normalized()
	notes, total, err := s.noteRepo.GetByOwner(ctx, userID, page.limit(), page.offset())
	if err != nil {
		return Page[NoteDTO]{}, err
	}
	return newPage(notesToDTO(notes), page, total), nil
}

// Search matches the term against title or content, case-insensitively,
// within the user's own notes.
func (s *NoteService) Search(ctx context.Context, userID uuid.UUID, term string, page PageRequest) (Page[NoteDTO], error) {
	page = page.normalized()
	notes, total, err := s.noteRepo.SearchByOwner(ctx, userID, term, page.limit(), page.offset())
	if err != nil {
		return Page[NoteDTO]{}, err
	}
	return newPage(notesToDTO(notes), page, total), nil
}

// ListByTag returns the user's notes carrying the named tag.
func (s *NoteService) ListByTag(ctx context.Context, userID uuid.UUID, tagName string, page PageRequest) (Page[NoteDTO], error) {
	page = page.normalized()
	notes, total, err := s.noteRepo.GetByOwnerAndTag(ctx, userID, tagName, page.limit(), page.offset())
	if err != nil {
		return Page[NoteDTO]{}, err
	}
	return newPage(notesToDTO(notes), page, total), nil
}

// Update overwrites title and content. The tag set is fully replaced when
// tagNames is non-nil (an empty slice clears it) and left untouched when nil.
func (s *NoteService) Update(ctx context.Context, id, actingUserID uuid.UUID, title, content string, tagNames *[]string) (NoteDTO, error) {
	if strings.TrimSpace(title) == "" {
		return NoteDTO{}, &InvalidInputError{Field: "title", Reason: "must not be empty"}
	}

	note, err := s.getOwned(ctx, id, actingUserID, "update")
	if err != nil {
		return NoteDTO{}, err
	}

	note.Title = title
	note.Content = content
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return NoteDTO{}, err
	}

	if tagNames != nil {
		tags, err := s.resolveTags(ctx, *tagNames)
		if err != nil {
			return NoteDTO{}, err
		}
		if err := s.noteRepo.ReplaceTags(ctx, note, tags); err != nil {
			return NoteDTO{}, err
		}
		note.Tags = tags
	}
	return noteToDTO(note), nil
}

// Delete removes the note. Tags attached to it survive; they may still be
// referenced by other notes.
func (s *NoteService) Delete(ctx context.Context, id, actingUserID uuid.UUID) error {
	if _, err := s.getOwned(ctx, id, actingUserID, "delete"); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, id)
}

// getOwned loads the note and enforces ownership, not-found first.
func (s *NoteService) getOwned(ctx context.Context, id, actingUserID uuid.UUID, action string) (*model.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, &NotFoundError{Entity: "note", ID: id}
		}
		return nil, err
	}
	if err := authorize(action, "note", id, actingUserID, note.OwnerID); err != nil {
		return nil, err
	}
	return note, nil
}

// resolveTags maps tag names to tags via the registry, deduplicating
// case-insensitively within the call.
func (s *NoteService) resolveTags(ctx context.Context, tagNames []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(tagNames))
	seen := make(map[string]bool, len(tagNames))
	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		tag, err := s.tags.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func notesToDTO(notes []model.Note) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i := range notes {
		dtos[i] = noteToDTO(&notes[i])
	}
	return dtos
}

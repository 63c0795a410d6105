package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"productivity/internal/model"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create adds a new note to the database, inserting note_tags rows for any
// attached tags
func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// GetByID retrieves a note by its ID together with its tags
func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	var note model.Note
	result := r.db.WithContext(ctx).Preload("Tags").First(&note, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, result.Error
	}
	return &note, nil
}

// GetByOwner retrieves a page of the owner's notes, most recently updated first
func (r *NoteRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.Note, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var notes []model.Note
	err = r.db.WithContext(ctx).Preload("Tags").
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// SearchByOwner retrieves a page of the owner's notes whose title or content
// contains the search term, case-insensitively
func (r *NoteRepository) SearchByOwner(ctx context.Context, ownerID uuid.UUID, term string, limit, offset int) ([]model.Note, int64, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	cond := "owner_id = ? AND (LOWER(title) LIKE ? OR LOWER(content) LIKE ?)"

	var total int64
	err := r.db.WithContext(ctx).Model(&model.Note{}).
		Where(cond, ownerID, pattern, pattern).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var notes []model.Note
	err = r.db.WithContext(ctx).Preload("Tags").
		Where(cond, ownerID, pattern, pattern).
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// GetByOwnerAndTag retrieves a page of the owner's notes carrying the named
// tag (case-insensitive match on the tag name)
func (r *NoteRepository) GetByOwnerAndTag(ctx context.Context, ownerID uuid.UUID, tagName string, limit, offset int) ([]model.Note, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Note{}).
		Joins("JOIN note_tags ON note_tags.note_id = notes.id").
		Joins("JOIN tags ON tags.id = note_tags.tag_id").
		Where("notes.owner_id = ? AND LOWER(tags.name) = LOWER(?)", ownerID, tagName).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var notes []model.Note
	err = r.db.WithContext(ctx).Preload("Tags").
		Joins("JOIN note_tags ON note_tags.note_id = notes.id").
		Joins("JOIN tags ON tags.id = note_tags.tag_id").
		Where("notes.owner_id = ? AND LOWER(tags.name) = LOWER(?)", ownerID, tagName).
		Order("notes.updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// Update saves the note's scalar fields
func (r *NoteRepository) Update(ctx context.Context, note *model.Note) error {
	result := r.db.WithContext(ctx).Omit("Tags").Save(note)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// ReplaceTags swaps the note's tag set for the given one
func (r *NoteRepository) ReplaceTags(ctx context.Context, note *model.Note, tags []model.Tag) error {
	return r.db.WithContext(ctx).Model(note).Association("Tags").Replace(tags)
}

// Delete removes a note and its tag memberships; the tags themselves survive
func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM note_tags WHERE note_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Note{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNoteNotFound
		}
		return nil
	})
}

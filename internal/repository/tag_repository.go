package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"productivity/internal/model"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create adds a new tag to the database
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// GetByID retrieves a tag by its ID
func (r *TagRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	result := r.db.WithContext(ctx).First(&tag, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, result.Error
	}
	return &tag, nil
}

// FindByName retrieves a tag by its name, compared case-insensitively.
// Returns nil, nil when no such tag exists.
func (r *TagRepository) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tag, err
}

// GetByUserNotes retrieves the tags that appear on at least one note owned by
// the given user
func (r *TagRepository) GetByUserNotes(ctx context.Context, userID uuid.UUID) ([]model.Tag, error) {
	var tags []model.Tag
	result := r.db.WithContext(ctx).
		Distinct("tags.*").
		Joins("JOIN note_tags ON note_tags.tag_id = tags.id").
		Joins("JOIN notes ON notes.id = note_tags.note_id").
		Where("notes.owner_id = ?", userID).
		Order("tags.name").
		Find(&tags)

	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}

// CountNotesOwnedBy returns how many notes carrying the tag belong to the user
func (r *TagRepository) CountNotesOwnedBy(ctx context.Context, tagID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Joins("JOIN note_tags ON note_tags.note_id = notes.id").
		Where("note_tags.tag_id = ? AND notes.owner_id = ?", tagID, userID).
		Count(&count).Error
	return count, err
}

// DeleteWithDetach detaches the tag from every note referencing it and then
// removes the tag row, all in one transaction.
func (r *TagRepository) DeleteWithDetach(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM note_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Tag{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTagNotFound
		}
		return nil
	})
}

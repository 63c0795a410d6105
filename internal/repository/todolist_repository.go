package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"productivity/internal/model"
)

type TodoListRepository struct {
	db *gorm.DB
}

func NewTodoListRepository(db *gorm.DB) *TodoListRepository {
	return &TodoListRepository{db: db}
}

// Create adds a new to-do list to the database
func (r *TodoListRepository) Create(ctx context.Context, list *model.TodoList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// GetByID retrieves a to-do list by its ID
func (r *TodoListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TodoList, error) {
	var list model.TodoList
	result := r.db.WithContext(ctx).First(&list, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTodoListNotFound
		}
		return nil, result.Error
	}
	return &list, nil
}

// GetByIDWithTasks retrieves a to-do list together with its tasks
func (r *TodoListRepository) GetByIDWithTasks(ctx context.Context, id uuid.UUID) (*model.TodoList, error) {
	var list model.TodoList
	result := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.due_date")
		}).
		First(&list, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTodoListNotFound
		}
		return nil, result.Error
	}
	return &list, nil
}

// GetByOwner retrieves a page of the owner's lists, most recently updated first
func (r *TodoListRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.TodoList, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.TodoList{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var lists []model.TodoList
	err = r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&lists).Error
	if err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

// SearchByOwner retrieves a page of the owner's lists whose name contains the
// search term, case-insensitively
func (r *TodoListRepository) SearchByOwner(ctx context.Context, ownerID uuid.UUID, term string, limit, offset int) ([]model.TodoList, int64, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	cond := "owner_id = ? AND LOWER(name) LIKE ?"

	var total int64
	err := r.db.WithContext(ctx).Model(&model.TodoList{}).
		Where(cond, ownerID, pattern).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var lists []model.TodoList
	err = r.db.WithContext(ctx).
		Where(cond, ownerID, pattern).
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&lists).Error
	if err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

// Update saves an existing to-do list
func (r *TodoListRepository) Update(ctx context.Context, list *model.TodoList) error {
	result := r.db.WithContext(ctx).Omit("Tasks").Save(list)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoListNotFound
	}
	return nil
}

// Delete removes a to-do list and all of its tasks in one transaction; tasks
// cannot outlive their parent list.
func (r *TodoListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Task{}, "todo_list_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.TodoList{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTodoListNotFound
		}
		return nil
	})
}

package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"productivity/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByList retrieves a page of a list's tasks ordered by due date
func (r *TaskRepository) GetByList(ctx context.Context, listID uuid.UUID, limit, offset int) ([]model.Task, int64, error) {
	return r.pageByList(ctx, "todo_list_id = ?", []interface{}{listID}, limit, offset)
}

// GetByListAndStatus retrieves a page of a list's tasks with the given status
func (r *TaskRepository) GetByListAndStatus(ctx context.Context, listID uuid.UUID, status string, limit, offset int) ([]model.Task, int64, error) {
	return r.pageByList(ctx, "todo_list_id = ? AND status = ?", []interface{}{listID, status}, limit, offset)
}

// GetByListAndPriority retrieves a page of a list's tasks with the given priority
func (r *TaskRepository) GetByListAndPriority(ctx context.Context, listID uuid.UUID, priority string, limit, offset int) ([]model.Task, int64, error) {
	return r.pageByList(ctx, "todo_list_id = ? AND priority = ?", []interface{}{listID, priority}, limit, offset)
}

// SearchByList retrieves a page of a list's tasks whose title contains the
// search term, case-insensitively
func (r *TaskRepository) SearchByList(ctx context.Context, listID uuid.UUID, term string, limit, offset int) ([]model.Task, int64, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	return r.pageByList(ctx, "todo_list_id = ? AND LOWER(title) LIKE ?", []interface{}{listID, pattern}, limit, offset)
}

func (r *TaskRepository) pageByList(ctx context.Context, cond string, args []interface{}, limit, offset int) ([]model.Task, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where(cond, args...).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var tasks []model.Task
	err = r.db.WithContext(ctx).
		Where(cond, args...).
		Order("due_date").
		Limit(limit).Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// GetDueBetween retrieves the user's tasks due inside [start, end], across all
// of their lists, ascending by due date. Ownership is resolved through the
// parent list.
func (r *TaskRepository) GetDueBetween(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Joins("JOIN todo_lists ON todo_lists.id = tasks.todo_list_id").
		Where("todo_lists.owner_id = ? AND tasks.due_date BETWEEN ? AND ?", ownerID, start, end).
		Order("tasks.due_date").
		Find(&tasks)

	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// GetOverdue retrieves the user's tasks whose due date has passed and that are
// not completed
func (r *TaskRepository) GetOverdue(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Joins("JOIN todo_lists ON todo_lists.id = tasks.todo_list_id").
		Where("todo_lists.owner_id = ? AND tasks.due_date < ? AND tasks.status <> ?", ownerID, now, model.StatusCompleted).
		Order("tasks.due_date").
		Find(&tasks)

	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Update saves an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

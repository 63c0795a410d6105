package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"productivity/internal/model"
	"productivity/internal/repository"
)

// TaskService owns individual tasks. A task has no owner of its own: every
// authorization resolves the parent list and checks its owner.
type TaskService struct {
	taskRepo *repository.TaskRepository
	listRepo *repository.TodoListRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, listRepo *repository.TodoListRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, listRepo: listRepo}
}

// Create adds a task to the list. Status starts at PENDING; priority defaults
// to MEDIUM when not supplied.
func (s *TaskService) Create(ctx context.Context, listID, actingUserID uuid.UUID, title, description string, priority *string, dueDate *time.Time) (TaskDTO, error) {
	if strings.TrimSpace(title) == "" {
		return TaskDTO{}, &InvalidInputError{Field: "title", Reason: "must not be empty"}
	}
	if _, err := s.ownedList(ctx, listID, actingUserID, "add tasks to"); err != nil {
		return TaskDTO{}, err
	}

	task := &model.Task{
		ID:          uuid.New(),
		TodoListID:  listID,
		Title:       title,
		Description: description,
		Status:      model.StatusPending,
		Priority:    model.PriorityMedium,
		DueDate:     dueDate,
	}
	if priority != nil {
		if !model.ValidPriority(*priority) {
			return TaskDTO{}, &InvalidInputError{Field: "priority", Reason: "must be LOW, MEDIUM or HIGH"}
		}
		task.Priority = *priority
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return TaskDTO{}, err
	}
	return taskToDTO(task), nil
}

func (s *TaskService) GetByID(ctx context.Context, id, actingUserID uuid.UUID) (TaskDTO, error) {
	task, err := s.getOwned(ctx, id, actingUserID, "access")
	if err != nil {
		return TaskDTO{}, err
	}
	return taskToDTO(task), nil
}

func (s *TaskService) ListByList(ctx context.Context, listID, actingUserID uuid.UUID, page PageRequest) (Page[TaskDTO], error) {
	if _, err := s.ownedList(ctx, listID, actingUserID, "access tasks in"); err != nil {
		return Page[TaskDTO]{}, err
	}
	page = page.normalized()
	tasks, total, err := s.taskRepo.GetByList(ctx, listID, page.limit(), page.offset())
	if err != nil {
		return Page[TaskDTO]{}, err
	}
	return newPage(taskListToDTO(tasks), page, total), nil
}

func (s *TaskService) ListByListAndStatus(ctx context.Context, listID, actingUserID uuid.UUID, status string, page PageRequest) (Page[TaskDTO], error) {
	if !model.ValidStatus(status) {
		return Page[TaskDTO]{}, &InvalidInputError{Field: "status", Reason: "must be PENDING, IN_PROGRESS, COMPLETED or CANCELLED"}
	}
	if _, err := s.ownedList(ctx, listID, actingUserID, "access tasks in"); err != nil {
		return Page[TaskDTO]{}, err
	}
	page = page.normalized()
	tasks, total, err := s.taskRepo.GetByListAndStatus(ctx, listID, status, page.limit(), page.offset())
	if err != nil {
		return Page[TaskDTO]{}, err
	}
	return newPage(taskListToDTO(tasks), page, total), nil
}

func (s *TaskService) ListByListAndPriority(ctx context.Context, listID, actingUserID uuid.UUID, priority string, page PageRequest) (Page[TaskDTO], error) {
	if !model.ValidPriority(priority) {
		return Page[TaskDTO]{}, &InvalidInputError{Field: "priority", Reason: "must be LOW, MEDIUM or HIGH"}
	}
	if _, err := s.ownedList(ctx, listID, actingUserID, "access tasks in"); err != nil {
		return Page[TaskDTO]{}, err
	}
	page = page.normalized()
	tasks, total, err := s.taskRepo.GetByListAndPriority(ctx, listID, priority, page.limit(), page.offset())
	if err != nil {
		return Page[TaskDTO]{}, err
	}
	return newPage(taskListToDTO(tasks), page, total), nil
}

// Search matches the term against task titles, case-insensitively, within the
// list.
func (s *TaskService) Search(ctx context.Context, listID, actingUserID uuid.UUID, term string, page PageRequest) (Page[TaskDTO], error) {
	if _, err := s.ownedList(ctx, listID, actingUserID, "access tasks in"); err != nil {
		return Page[TaskDTO]{}, err
	}
	page = page.normalized()
	tasks, total, err := s.taskRepo.SearchByList(ctx, listID, term, page.limit(), page.offset())
	if err != nil {
		return Page[TaskDTO]{}, err
	}
	return newPage(taskListToDTO(tasks), page, total), nil
}

// ListDueBetween returns the user's tasks across all lists due inside the
// window, ascending by due date.
func (s *TaskService) ListDueBetween(ctx context.Context, actingUserID uuid.UUID, start, end time.Time) ([]TaskDTO, error) {
	tasks, err := s.taskRepo.GetDueBetween(ctx, actingUserID, start, end)
	if err != nil {
		return nil, err
	}
	return taskListToDTO(tasks), nil
}

// ListOverdue returns the user's tasks with a due date before now that are not
// completed.
func (s *TaskService) ListOverdue(ctx context.Context, actingUserID uuid.UUID, now time.Time) ([]TaskDTO, error) {
	tasks, err := s.taskRepo.GetOverdue(ctx, actingUserID, now)
	if err != nil {
		return nil, err
	}
	return taskListToDTO(tasks), nil
}

// Update overwrites title, description and due date (which may be cleared).
// Priority changes only when explicitly supplied.
func (s *TaskService) Update(ctx context.Context, id, actingUserID uuid.UUID, title, description string, priority *string, dueDate *time.Time) (TaskDTO, error) {
	if strings.TrimSpace(title) == "" {
		return TaskDTO{}, &InvalidInputError{Field: "title", Reason: "must not be empty"}
	}

	task, err := s.getOwned(ctx, id, actingUserID, "update")
	if err != nil {
		return TaskDTO{}, err
	}

	task.Title = title
	task.Description = description
	task.DueDate = dueDate
	if priority != nil {
		if !model.ValidPriority(*priority) {
			return TaskDTO{}, &InvalidInputError{Field: "priority", Reason: "must be LOW, MEDIUM or HIGH"}
		}
		task.Priority = *priority
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return TaskDTO{}, err
	}
	return taskToDTO(task), nil
}

// SetStatus applies a status transition. completedAt is derived in the same
// write: set the instant the task enters COMPLETED, cleared on any transition
// away from it.
func (s *TaskService) SetStatus(ctx context.Context, id, actingUserID uuid.UUID, status string) (TaskDTO, error) {
	if !model.ValidStatus(status) {
		return TaskDTO{}, &InvalidInputError{Field: "status", Reason: "must be PENDING, IN_PROGRESS, COMPLETED or CANCELLED"}
	}

	task, err := s.getOwned(ctx, id, actingUserID, "update")
	if err != nil {
		return TaskDTO{}, err
	}

	task.Status = status
	if status == model.StatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return TaskDTO{}, err
	}
	return taskToDTO(task), nil
}

func (s *TaskService) Delete(ctx context.Context, id, actingUserID uuid.UUID) error {
	if _, err := s.getOwned(ctx, id, actingUserID, "delete"); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

// getOwned loads the task and authorizes the acting user against the owner of
// the parent list, resolved by lookup rather than stored on the task.
func (s *TaskService) getOwned(ctx context.Context, id, actingUserID uuid.UUID, action string) (*model.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTaskNotFound {
			return nil, &NotFoundError{Entity: "task", ID: id}
		}
		return nil, err
	}

	list, err := s.listRepo.GetByID(ctx, task.TodoListID)
	if err != nil {
		if err == repository.ErrTodoListNotFound {
			return nil, &NotFoundError{Entity: "todo list", ID: task.TodoListID}
		}
		return nil, err
	}
	if err := authorize(action, "task", id, actingUserID, list.OwnerID); err != nil {
		return nil, err
	}
	return task, nil
}

// ownedList resolves the parent list and enforces ownership, not-found first.
func (s *TaskService) ownedList(ctx context.Context, listID, actingUserID uuid.UUID, action string) (*model.TodoList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if err == repository.ErrTodoListNotFound {
			return nil, &NotFoundError{Entity: "todo list", ID: listID}
		}
		return nil, err
	}
	if err := authorize(action, "todo list", listID, actingUserID, list.OwnerID); err != nil {
		return nil, err
	}
	return list, nil
}

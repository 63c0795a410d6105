package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"productivity/internal/model"
	"productivity/internal/repository"
)

// TodoListService owns to-do lists, the ownership roots their tasks inherit
// authorization from.
type TodoListService struct {
	listRepo *repository.TodoListRepository
}

func NewTodoListService(listRepo *repository.TodoListRepository) *TodoListService {
	return &TodoListService{listRepo: listRepo}
}

func (s *TodoListService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (TodoListDTO, error) {
	if err := validateListName(name); err != nil {
		return TodoListDTO{}, err
	}

	list := &model.TodoList{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Tasks:       []model.Task{},
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return TodoListDTO{}, err
	}
	return todoListToDTO(list), nil
}

// GetByID returns the list together with its tasks.
func (s *TodoListService) GetByID(ctx context.Context, id, actingUserID uuid.UUID) (TodoListDTO, error) {
	list, err := s.listRepo.GetByIDWithTasks(ctx, id)
	if err != nil {
		if err == repository.ErrTodoListNotFound {
			return TodoListDTO{}, &NotFoundError{Entity: "todo list", ID: id}
		}
		return TodoListDTO{}, err
	}
	if err := authorize("access", "todo list", id, actingUserID, list.OwnerID); err != nil {
		return TodoListDTO{}, err
	}
	return todoListToDTO(list), nil
}

func (s *TodoListService) ListForUser(ctx context.Context, userID uuid.UUID, page PageRequest) (Page[TodoListDTO], error) {
	page = page.normalized()
	lists, total, err := s.listRepo.GetByOwner(ctx, userID, page.limit(), page.offset())
	if err != nil {
		return Page[TodoListDTO]{}, err
	}
	return newPage(listsToDTO(lists), page, total), nil
}

// Search matches the term against list names, case-insensitively, within the
// user's own lists.
func (s *TodoListService) Search(ctx context.Context, userID uuid.UUID, term string, page PageRequest) (Page[TodoListDTO], error) {
	page = page.normalized()
	lists, total, err := s.listRepo.SearchByOwner(ctx, userID, term, page.limit(), page.offset())
	if err != nil {
		return Page[TodoListDTO]{}, err
	}
	return newPage(listsToDTO(lists), page, total), nil
}

func (s *TodoListService) Update(ctx context.Context, id, actingUserID uuid.UUID, name, description string) (TodoListDTO, error) {
	if err := validateListName(name); err != nil {
		return TodoListDTO{}, err
	}

	list, err := s.getOwned(ctx, id, actingUserID, "update")
	if err != nil {
		return TodoListDTO{}, err
	}

	list.Name = name
	list.Description = description
	if err := s.listRepo.Update(ctx, list); err != nil {
		return TodoListDTO{}, err
	}
	return todoListToDTO(list), nil
}

// Delete removes the list and cascades to all of its tasks.
func (s *TodoListService) Delete(ctx context.Context, id, actingUserID uuid.UUID) error {
	if _, err := s.getOwned(ctx, id, actingUserID, "delete"); err != nil {
		return err
	}
	return s.listRepo.Delete(ctx, id)
}

func (s *TodoListService) getOwned(ctx context.Context, id, actingUserID uuid.UUID, action string) (*model.TodoList, error) {
	list, err := s.listRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTodoListNotFound {
			return nil, &NotFoundError{Entity: "todo list", ID: id}
		}
		return nil, err
	}
	if err := authorize(action, "todo list", id, actingUserID, list.OwnerID); err != nil {
		return nil, err
	}
	return list, nil
}

func validateListName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &InvalidInputError{Field: "name", Reason: "must not be empty"}
	}
	if len(name) > 100 {
		return &InvalidInputError{Field: "name", Reason: "must be at most 100 characters"}
	}
	return nil
}

func listsToDTO(lists []model.TodoList) []TodoListDTO {
	dtos := make([]TodoListDTO, len(lists))
	for i := range lists {
		dtos[i] = todoListToDTO(&lists[i])
	}
	return dtos
}

package service

import (
	"time"

	"github.com/google/uuid"

	"productivity/internal/model"
)

// Plain projections handed to the presentation layer. They carry ids and
// scalar fields only, never gorm associations.

type TagDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type NoteDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Tags      []TagDTO  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TaskDTO struct {
	ID          uuid.UUID  `json:"id"`
	TodoListID  uuid.UUID  `json:"todo_list_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TodoListDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Tasks       []TaskDTO `json:"tasks,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func tagToDTO(tag *model.Tag) TagDTO {
	return TagDTO{ID: tag.ID, Name: tag.Name}
}

func noteToDTO(note *model.Note) NoteDTO {
	tags := make([]TagDTO, len(note.Tags))
	for i := range note.Tags {
		tags[i] = tagToDTO(&note.Tags[i])
	}
	return NoteDTO{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		OwnerID:   note.OwnerID,
		Tags:      tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func taskToDTO(task *model.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		TodoListID:  task.TodoListID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func taskListToDTO(tasks []model.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i := range tasks {
		dtos[i] = taskToDTO(&tasks[i])
	}
	return dtos
}

func todoListToDTO(list *model.TodoList) TodoListDTO {
	return TodoListDTO{
		ID:          list.ID,
		Name:        list.Name,
		Description: list.Description,
		OwnerID:     list.OwnerID,
		Tasks:       taskListToDTO(list.Tasks),
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
	}
}

func userToDTO(user *model.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"productivity/internal/model"
	"productivity/internal/repository"
	"productivity/internal/service"
)

// fixture wires the full service stack over an in-memory sqlite database so
// the tests exercise real query semantics (joins, ordering, cascades).
type fixture struct {
	db    *gorm.DB
	tags  *service.TagService
	notes *service.NoteService
	lists *service.TodoListService
	tasks *service.TaskService
	users *service.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A fresh connection to an in-memory database is a fresh database; pin
	// the pool to one connection so every query sees the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Note{},
		&model.TodoList{},
		&model.Task{},
	))

	tagRepo := repository.NewTagRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	listRepo := repository.NewTodoListRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	tags := service.NewTagService(tagRepo)

	return &fixture{
		db:    db,
		tags:  tags,
		notes: service.NewNoteService(noteRepo, tags),
		lists: service.NewTodoListService(listRepo),
		tasks: service.NewTaskService(taskRepo, listRepo),
		users: service.NewUserService(userRepo),
	}
}

func (f *fixture) createUser(t *testing.T, email string) uuid.UUID {
	t.Helper()

	user := &model.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: "hashed",
		Name:           "Test User",
	}
	require.NoError(t, f.db.Create(user).Error)
	return user.ID
}

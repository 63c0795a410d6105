package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productivity/internal/config"
	"productivity/internal/handler"
	"productivity/internal/middleware"
	"productivity/internal/repository"
	"productivity/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Apply schema migrations before opening the pool
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}

	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	// Setup Gin
	r := gin.Default()
	r.Use(cors.Default())

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	listRepo := repository.NewTodoListRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	tagService := service.NewTagService(tagRepo)
	noteService := service.NewNoteService(noteRepo, tagService)
	listService := service.NewTodoListService(listRepo)
	taskService := service.NewTaskService(taskRepo, listRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, userService, cfg)
	tagHandler := handler.NewTagHandler(tagService)
	noteHandler := handler.NewNoteHandler(noteService)
	listHandler := handler.NewTodoListHandler(listService)
	taskHandler := handler.NewTaskHandler(taskService)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	r.POST("/api/auth/signup", userHandler.Register)
	r.POST("/api/auth/signin", userHandler.Login)

	// Protected routes - require authentication
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		api.GET("/users/me", userHandler.Me)
		api.GET("/users", userHandler.GetAll)
		api.GET("/users/:id", userHandler.GetByID)
		api.PUT("/users/:id", userHandler.Update)
		api.DELETE("/users/:id", userHandler.Delete)

		// Tag routes
		api.POST("/tags", tagHandler.Create)
		api.GET("/tags", tagHandler.GetAll)
		api.DELETE("/tags/:id", tagHandler.Delete)

		// Note routes
		api.POST("/notes", noteHandler.Create)
		api.GET("/notes", noteHandler.GetAll)
		api.GET("/notes/search", noteHandler.Search)
		api.GET("/notes/tags/:tagName", noteHandler.GetByTag)
		api.GET("/notes/:id", noteHandler.GetByID)
		api.PUT("/notes/:id", noteHandler.Update)
		api.DELETE("/notes/:id", noteHandler.Delete)

		// TodoList routes
		api.POST("/todo-lists", listHandler.Create)
		api.GET("/todo-lists", listHandler.GetAll)
		api.GET("/todo-lists/search", listHandler.Search)
		api.GET("/todo-lists/:id", listHandler.GetByID)
		api.PUT("/todo-lists/:id", listHandler.Update)
		api.DELETE("/todo-lists/:id", listHandler.Delete)

		// Task routes, nested under the owning list
		api.POST("/todo-lists/:id/tasks", taskHandler.Create)
		api.GET("/todo-lists/:id/tasks", taskHandler.GetByList)
		api.GET("/todo-lists/:id/tasks/search", taskHandler.Search)
		api.GET("/todo-lists/:id/tasks/status/:status", taskHandler.GetByStatus)
		api.GET("/todo-lists/:id/tasks/priority/:priority", taskHandler.GetByPriority)
		api.GET("/todo-lists/:id/tasks/:taskId", taskHandler.GetByID)
		api.PUT("/todo-lists/:id/tasks/:taskId", taskHandler.Update)
		api.PATCH("/todo-lists/:id/tasks/:taskId/status", taskHandler.SetStatus)
		api.DELETE("/todo-lists/:id/tasks/:taskId", taskHandler.Delete)

		// Cross-list task queries
		api.GET("/tasks/due-between", taskHandler.GetDueBetween)
		api.GET("/tasks/overdue", taskHandler.GetOverdue)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func runMigrations(cfg *config.Config) error {
	url := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)

	m, err := migrate.New("file://"+cfg.MigrationsPath, url)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	log.Println("✅ Database schema up to date")
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"productivity/internal/service"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// TaskRequest is the request body for creating or updating a task. Priority
// is only applied when present; DueDate may be omitted or cleared.
type TaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type TaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create adds a task to the list in the URL
func (h *TaskHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), listID, identity.UserID, req.Title, req.Description, req.Priority, req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetByID returns a single task; authorization walks task -> list -> owner
func (h *TaskHandler) GetByID(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// GetByList returns a page of the list's tasks ordered by due date
func (h *TaskHandler) GetByList(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, err := h.tasks.ListByList(c.Request.Context(), listID, identity.UserID, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetByStatus returns a page of the list's tasks with the given status
func (h *TaskHandler) GetByStatus(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, err := h.tasks.ListByListAndStatus(c.Request.Context(), listID, identity.UserID, c.Param("status"), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetByPriority returns a page of the list's tasks with the given priority
func (h *TaskHandler) GetByPriority(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, err := h.tasks.ListByListAndPriority(c.Request.Context(), listID, identity.UserID, c.Param("priority"), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Search returns the list's tasks whose title matches the query
func (h *TaskHandler) Search(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	page, err := h.tasks.Search(c.Request.Context(), listID, identity.UserID, query, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetDueBetween returns the user's tasks across all lists due inside the
// [startDate, endDate] window
func (h *TaskHandler) GetDueBetween(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	start, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected YYYY-MM-DD"})
		return
	}
	// Include the whole end day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	tasks, err := h.tasks.ListDueBetween(c.Request.Context(), identity.UserID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetOverdue returns the user's unfinished tasks whose due date has passed
func (h *TaskHandler) GetOverdue(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListOverdue(c.Request.Context(), identity.UserID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Update overwrites title, description and due date; priority only if present
func (h *TaskHandler) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), taskID, identity.UserID, req.Title, req.Description, req.Priority, req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// SetStatus applies a status transition, deriving completed_at
func (h *TaskHandler) SetStatus(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	var req TaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.SetStatus(c.Request.Context(), taskID, identity.UserID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Delete removes a task
func (h *TaskHandler) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskID, identity.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

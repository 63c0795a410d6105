package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"productivity/internal/service"
)

type TodoListHandler struct {
	lists *service.TodoListService
}

func NewTodoListHandler(lists *service.TodoListService) *TodoListHandler {
	return &TodoListHandler{lists: lists}
}

type TodoListRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

// Create creates a new to-do list for the authenticated user
func (h *TodoListHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req TodoListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	list, err := h.lists.Create(c.Request.Context(), identity.UserID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// GetByID returns a list together with its tasks
func (h *TodoListHandler) GetByID(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.lists.GetByID(c.Request.Context(), listID, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetAll returns a page of the authenticated user's lists
func (h *TodoListHandler) GetAll(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	page, err := h.lists.ListForUser(c.Request.Context(), identity.UserID, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Search returns the user's lists whose name matches the query
func (h *TodoListHandler) Search(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	page, err := h.lists.Search(c.Request.Context(), identity.UserID, query, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Update overwrites a list's name and description
func (h *TodoListHandler) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TodoListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	list, err := h.lists.Update(c.Request.Context(), listID, identity.UserID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Delete removes a list and all of its tasks
func (h *TodoListHandler) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.lists.Delete(c.Request.Context(), listID, identity.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

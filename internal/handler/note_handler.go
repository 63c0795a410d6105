package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"productivity/internal/service"
)

type NoteHandler struct {
	notes *service.NoteService
}

func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// NoteRequest is the request body for creating or updating a note. On update
// a nil Tags field leaves the note's tag set untouched, while an empty slice
// clears it.
type NoteRequest struct {
	Title   string    `json:"title" binding:"required"`
	Content string    `json:"content"`
	Tags    *[]string `json:"tags"`
}

// Create creates a new note for the authenticated user
func (h *NoteHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var tagNames []string
	if req.Tags != nil {
		tagNames = *req.Tags
	}

	note, err := h.notes.Create(c.Request.Context(), identity.UserID, req.Title, req.Content, tagNames)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// GetByID returns a single note owned by the authenticated user
func (h *NoteHandler) GetByID(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	note, err := h.notes.GetByID(c.Request.Context(), noteID, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// GetAll returns a page of the authenticated user's notes
func (h *NoteHandler) GetAll(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	page, err := h.notes.ListForUser(c.Request.Context(), identity.UserID, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Search returns the user's notes matching the query in title or content
func (h *NoteHandler) Search(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	page, err := h.notes.Search(c.Request.Context(), identity.UserID, query, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetByTag returns the user's notes carrying the named tag
func (h *NoteHandler) GetByTag(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	tagName := c.Param("tagName")

	page, err := h.notes.ListByTag(c.Request.Context(), identity.UserID, tagName, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Update overwrites a note's title, content and (when supplied) tag set
func (h *NoteHandler) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	note, err := h.notes.Update(c.Request.Context(), noteID, identity.UserID, req.Title, req.Content, req.Tags)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// Delete removes a note; shared tags are never deleted with it
func (h *NoteHandler) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notes.Delete(c.Request.Context(), noteID, identity.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

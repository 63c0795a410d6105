package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"productivity/internal/service"
)

type TagHandler struct {
	tags *service.TagService
}

func NewTagHandler(tags *service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create creates a tag explicitly; a case-insensitive name collision is a
// conflict, not a silent reuse
func (h *TagHandler) Create(c *gin.Context) {
	if _, ok := currentIdentity(c); !ok {
		return
	}

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tag, err := h.tags.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// GetAll returns the tags used by the authenticated user's notes
func (h *TagHandler) GetAll(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	tags, err := h.tags.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// Delete removes a tag from every note referencing it, then the tag itself
func (h *TagHandler) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	tagID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tags.Delete(c.Request.Context(), tagID, identity.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

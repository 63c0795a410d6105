package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"productivity/internal/middleware"
	"productivity/internal/service"
)

// currentIdentity pulls the acting identity resolved by the auth middleware
// out of the request context.
func currentIdentity(c *gin.Context) (service.Identity, bool) {
	value, exists := c.Get(middleware.IdentityKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return service.Identity{}, false
	}

	identity, ok := value.(service.Identity)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid identity format"})
		return service.Identity{}, false
	}
	return identity, true
}

// parseIDParam parses a UUID path parameter, answering 400 on bad input.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

// pageRequest reads the page/size query parameters, falling back to the
// service defaults.
func pageRequest(c *gin.Context) service.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
	return service.PageRequest{Page: page, Size: size}
}

// respondError maps core error kinds onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var unauthorized *service.UnauthorizedError
	var alreadyExists *service.AlreadyExistsError
	var invalidInput *service.InvalidInputError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &alreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &invalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

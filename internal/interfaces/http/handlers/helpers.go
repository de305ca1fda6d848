package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/middleware"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

// respondBindError reports a malformed body or query as a validation error.
func respondBindError(c *gin.Context, err error) {
	utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request", err.Error()))
}

// resourceID takes the id from the path, falling back to ?id= for the
// collection-level PUT and DELETE routes.
func resourceID(c *gin.Context) string {
	if id := strings.TrimSpace(c.Param("id")); id != "" {
		return id
	}
	return strings.TrimSpace(c.Query("id"))
}

func actorID(c *gin.Context) string {
	return middleware.ActorID(c)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"habitflow/internal/repository"
	"habitflow/internal/rules"
	"habitflow/internal/service"
)

// respondError maps domain errors onto HTTP responses. Rule violations are
// client errors with the exact diagnostic text; everything unexpected is a
// plain 500.
func respondError(c *gin.Context, err error) {
	var v *rules.Violation
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusBadRequest, gin.H{"error": v.Msg})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, repository.ErrReferenced):
		c.JSON(http.StatusBadRequest, gin.H{"error": "still referenced by existing habits"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

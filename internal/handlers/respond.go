package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecto-dev/projecto/internal/apperror"
)

// respondError maps a domain error onto the API's wire contract: validation
// and conflict errors become 400 with a {field: message} body, not-found
// becomes 404, anything else is a logged 500.
func respondError(ctx *gin.Context, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
			return
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrConflict):
			ctx.JSON(http.StatusBadRequest, gin.H{appErr.Field: appErr.Message})
			return
		}
	}

	log.Printf("Internal error: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecto-dev/projecto/internal/services"
)

// ProjectCount returns {createdprojects, joinedprojects, pendingrequests}
// for the user in the email query parameter. A missing parameter is a bad
// request; an unknown email is a 404.
func ProjectCount(ctx *gin.Context) {
	email := ctx.Query("email")

	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email query parameter is required"})
		return
	}

	counts, err := services.ProjectCounts(email)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, counts)
}

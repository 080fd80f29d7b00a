package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/projecto-dev/projecto/internal/middleware"
	"github.com/projecto-dev/projecto/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

// EmailParamOrCurrent returns the email query parameter when supplied,
// falling back to the authenticated user's own email. Listing endpoints use
// this so a missing param means "me" rather than an error.
func EmailParamOrCurrent(ctx *gin.Context, param string) string {
	if email := ctx.Query(param); email != "" {
		return email
	}

	user, err := GetCurrentUser(ctx)
	if err != nil {
		return ""
	}

	return user.Email
}

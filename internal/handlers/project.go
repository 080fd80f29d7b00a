package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecto-dev/projecto/internal/models"
	"github.com/projecto-dev/projecto/internal/services"
	"github.com/projecto-dev/projecto/internal/types"
	"github.com/projecto-dev/projecto/internal/utils"
)

type CreateProjectRequest struct {
	Email       string `json:"email" binding:"required,email"`
	ProjectName string `json:"projectname" binding:"required"`
	Description string `json:"description"`
	Frontend    bool   `json:"frontend"`
	Backend     bool   `json:"backend"`
}

func projectResponse(project models.Project) types.ProjectResponse {
	return types.ProjectResponse{
		Email:       project.Owner.Email,
		ProjectName: project.Name,
		Description: project.Description,
		Frontend:    project.Frontend,
		Backend:     project.Backend,
	}
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := services.CreateProject(body.Email, body.ProjectName, body.Description, body.Frontend, body.Backend)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

// ListOwnedProjects returns the projects created by the email in the query
// string, defaulting to the authenticated user. Unknown owners get an empty
// list rather than an error.
func ListOwnedProjects(ctx *gin.Context) {
	email := utils.EmailParamOrCurrent(ctx, "email")

	projects, err := services.OwnedProjects(email)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

// DiscoverProjects lists projects the viewer can apply to, with optional
// frontend/backend skill filters.
func DiscoverProjects(ctx *gin.Context) {
	email := utils.EmailParamOrCurrent(ctx, "email")
	frontend := ctx.Query("frontend") == "true"
	backend := ctx.Query("backend") == "true"

	projects, err := services.DiscoverProjects(email, frontend, backend)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.ProjectDisplayResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, types.ProjectDisplayResponse{
			OwnerEmail:  project.Owner.Email,
			FName:       project.Owner.FirstName,
			LName:       project.Owner.LastName,
			ProjectName: project.Name,
			Description: project.Description,
			Frontend:    project.Frontend,
			Backend:     project.Backend,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

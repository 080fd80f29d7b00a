package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecto-dev/projecto/internal/services"
	"github.com/projecto-dev/projecto/internal/types"
	"github.com/projecto-dev/projecto/internal/utils"
)

type JoinRequestBody struct {
	OwnerEmail  string `json:"owner_email" binding:"required,email"`
	ProjectName string `json:"projectname" binding:"required"`
	MemberEmail string `json:"member_email" binding:"required,email"`
	Message     string `json:"message"`
}

// ResolveRequestBody is shared by accept and reject; the field names match
// the original wire contract.
type ResolveRequestBody struct {
	Owner       string `json:"owner" binding:"required,email"`
	ProjectName string `json:"projectname" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Message     string `json:"message"`
}

func RequestJoin(ctx *gin.Context) {
	var body JoinRequestBody

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	membership, err := services.RequestJoin(body.OwnerEmail, body.ProjectName, body.MemberEmail, body.Message)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.JoinRequestResponse{
		OwnerEmail:  body.OwnerEmail,
		ProjectName: body.ProjectName,
		MemberEmail: body.MemberEmail,
		Message:     membership.Message,
	})
}

func AcceptMember(ctx *gin.Context) {
	var body ResolveRequestBody

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	membership, err := services.AcceptMember(body.Owner, body.ProjectName, body.Email, body.Message)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"owner":       body.Owner,
		"projectname": body.ProjectName,
		"email":       body.Email,
		"message":     membership.Message,
	})
}

func RejectRequest(ctx *gin.Context) {
	var body ResolveRequestBody

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	membership, err := services.RejectRequest(body.Owner, body.ProjectName, body.Email, body.Message)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"owner":       body.Owner,
		"projectname": body.ProjectName,
		"email":       body.Email,
		"message":     membership.Message,
	})
}

// ListPendingRequests shows an owner the pending join requests for one of
// their projects.
func ListPendingRequests(ctx *gin.Context) {
	email := utils.EmailParamOrCurrent(ctx, "email")
	projectName := ctx.Query("projectname")

	memberships, err := services.PendingRequestsForProject(email, projectName)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.PendingRequestResponse, 0, len(memberships))

	for _, m := range memberships {
		response = append(response, types.PendingRequestResponse{
			ID:      m.ID,
			Email:   m.User.Email,
			FName:   m.User.FirstName,
			LName:   m.User.LastName,
			Message: m.Message,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// ListProjectMembers shows the accepted members of an owner's project.
func ListProjectMembers(ctx *gin.Context) {
	email := utils.EmailParamOrCurrent(ctx, "email")
	projectName := ctx.Query("projectname")

	memberships, err := services.MembersOfProject(email, projectName)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.MemberResponse, 0, len(memberships))

	for _, m := range memberships {
		response = append(response, types.MemberResponse{
			MemberEmail: m.User.Email,
			MemberFName: m.User.FirstName,
			MemberLName: m.User.LastName,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// ListJoinedProjects shows the projects a user has been accepted into.
func ListJoinedProjects(ctx *gin.Context) {
	email := utils.EmailParamOrCurrent(ctx, "email")

	memberships, err := services.JoinedProjectsForUser(email)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.JoinedProjectResponse, 0, len(memberships))

	for _, m := range memberships {
		response = append(response, types.JoinedProjectResponse{
			ProjectName: m.Project.Name,
			Description: m.Project.Description,
			OwnerEmail:  m.Project.Owner.Email,
			OwnerFName:  m.Project.Owner.FirstName,
			OwnerLName:  m.Project.Owner.LastName,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// ListPendingProjects shows the join requests a user still has pending.
func ListPendingProjects(ctx *gin.Context) {
	email := utils.EmailParamOrCurrent(ctx, "email")

	memberships, err := services.PendingRequestsForUser(email)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.PendingProjectResponse, 0, len(memberships))

	for _, m := range memberships {
		response = append(response, types.PendingProjectResponse{
			ProjectName: m.Project.Name,
			Description: m.Project.Description,
			Message:     m.Message,
			OwnerEmail:  m.Project.Owner.Email,
			OwnerFName:  m.Project.Owner.FirstName,
			OwnerLName:  m.Project.Owner.LastName,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

package services

import (
	"errors"
	"time"

	"github.com/projecto-dev/projecto/db"
	"github.com/projecto-dev/projecto/internal/apperror"
	"github.com/projecto-dev/projecto/internal/models"
	"github.com/projecto-dev/projecto/internal/types"
	"gorm.io/gorm"
)

// The membership lifecycle is a per-(project, user) state machine:
//
//	NONE -> PENDING -> ACCEPTED
//	                -> REJECTED -> PENDING (re-application)
//
// One row per pair, guarded by the composite unique index. Accept and
// reject also work without a prior request; they insert the row directly.

func findUserByEmail(email, field string) (models.User, error) {
	var user models.User

	err := db.DB.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, apperror.Validation(field, "User with this email does not exist")
	}

	return user, err
}

func findProject(owner models.User, projectName string) (models.Project, error) {
	var project models.Project

	err := db.DB.Where("owner_id = ? AND name = ?", owner.ID, projectName).First(&project).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return project, apperror.Validation("projectname", "This project does not exist")
	}

	return project, err
}

func findMembership(projectID, userID uint) (models.ProjectMembership, error) {
	var membership models.ProjectMembership

	err := db.DB.Where("project_id = ? AND user_id = ?", projectID, userID).First(&membership).Error

	return membership, err
}

// RequestJoin records a pending join request for (project, member). A
// rejected pair may re-apply; a pending or accepted pair may not.
func RequestJoin(ownerEmail, projectName, memberEmail, message string) (models.ProjectMembership, error) {
	var membership models.ProjectMembership

	owner, err := findUserByEmail(ownerEmail, "owner_email")
	if err != nil {
		return membership, err
	}

	member, err := findUserByEmail(memberEmail, "member_email")
	if err != nil {
		return membership, err
	}

	project, err := findProject(owner, projectName)
	if err != nil {
		return membership, err
	}

	if message == "" {
		message = models.DefaultJoinMessage
	}

	existing, err := findMembership(project.ID, member.ID)

	if err == nil {
		switch existing.Status {
		case models.MembershipPending:
			return membership, apperror.Conflict("member_email", "A request for this project is already pending")
		case models.MembershipAccepted:
			return membership, apperror.Conflict("member_email", "User has already joined this project")
		}

		// Rejected: the pair re-enters the pending state.
		existing.Status = models.MembershipPending
		existing.Message = message
		existing.RespondedAt = nil

		if err := db.DB.Save(&existing).Error; err != nil {
			return membership, err
		}

		return existing, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return membership, err
	}

	membership = models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    member.ID,
		Status:    models.MembershipPending,
		Message:   message,
	}

	if err := db.DB.Create(&membership).Error; err != nil {
		// Concurrent duplicate: the unique index decided the race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return membership, apperror.Conflict("member_email", "A request for this project is already pending")
		}
		return membership, err
	}

	return membership, nil
}

func resolve(ownerEmail, projectName, memberEmail, message, status string) (models.ProjectMembership, error) {
	var membership models.ProjectMembership

	owner, err := findUserByEmail(ownerEmail, "owner")
	if err != nil {
		return membership, err
	}

	member, err := findUserByEmail(memberEmail, "email")
	if err != nil {
		return membership, err
	}

	project, err := findProject(owner, projectName)
	if err != nil {
		return membership, err
	}

	if message == "" {
		message = models.DefaultJoinMessage
	}

	duplicate := func() *apperror.AppError {
		if status == models.MembershipAccepted {
			return apperror.Conflict("email", "User is already a member of this project")
		}
		return apperror.Conflict("email", "User has already been rejected from this project")
	}

	now := time.Now()

	existing, err := findMembership(project.ID, member.ID)

	if err == nil {
		if existing.Status == status {
			return membership, duplicate()
		}

		existing.Status = status
		existing.Message = message
		existing.RespondedAt = &now

		if err := db.DB.Save(&existing).Error; err != nil {
			return membership, err
		}

		return existing, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return membership, err
	}

	// No prior request. Accept and reject still succeed, inserting the
	// resolved row directly.
	membership = models.ProjectMembership{
		ProjectID:   project.ID,
		UserID:      member.ID,
		Status:      status,
		Message:     message,
		RespondedAt: &now,
	}

	if err := db.DB.Create(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return membership, duplicate()
		}
		return membership, err
	}

	return membership, nil
}

// AcceptMember promotes (project, member) to the accepted state.
func AcceptMember(ownerEmail, projectName, memberEmail, message string) (models.ProjectMembership, error) {
	return resolve(ownerEmail, projectName, memberEmail, message, models.MembershipAccepted)
}

// RejectRequest moves (project, applicant) to the rejected state.
func RejectRequest(ownerEmail, projectName, applicantEmail, message string) (models.ProjectMembership, error) {
	return resolve(ownerEmail, projectName, applicantEmail, message, models.MembershipRejected)
}

// listForProject returns memberships with the given status for a project
// identified by owner email and project name. Unknown owner or project
// yields an empty list, not an error.
func listForProject(ownerEmail, projectName, status string) ([]models.ProjectMembership, error) {
	var memberships []models.ProjectMembership

	var owner models.User
	if err := db.DB.Where("email = ?", ownerEmail).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return memberships, nil
		}
		return nil, err
	}

	var project models.Project
	if err := db.DB.Where("owner_id = ? AND name = ?", owner.ID, projectName).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return memberships, nil
		}
		return nil, err
	}

	err := db.DB.Preload("User").
		Where("project_id = ? AND status = ?", project.ID, status).
		Find(&memberships).Error

	return memberships, err
}

func PendingRequestsForProject(ownerEmail, projectName string) ([]models.ProjectMembership, error) {
	return listForProject(ownerEmail, projectName, models.MembershipPending)
}

func MembersOfProject(ownerEmail, projectName string) ([]models.ProjectMembership, error) {
	return listForProject(ownerEmail, projectName, models.MembershipAccepted)
}

// listForUser returns memberships with the given status where the user is
// the requester/member, with project and owner display data preloaded.
func listForUser(email, status string) ([]models.ProjectMembership, error) {
	var memberships []models.ProjectMembership

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return memberships, nil
		}
		return nil, err
	}

	err := db.DB.Preload("Project").Preload("Project.Owner").
		Where("user_id = ? AND status = ?", user.ID, status).
		Find(&memberships).Error

	return memberships, err
}

func PendingRequestsForUser(email string) ([]models.ProjectMembership, error) {
	return listForUser(email, models.MembershipPending)
}

func JoinedProjectsForUser(email string) ([]models.ProjectMembership, error) {
	return listForUser(email, models.MembershipAccepted)
}

// DiscoverProjects lists projects visible to the viewer: not their own and
// not ones they already have a pending or accepted membership for. Rejected
// projects stay visible unless the hide-rejected policy is enabled.
// Requesting both skill filters disables skill filtering entirely.
func DiscoverProjects(viewerEmail string, frontend, backend bool) ([]models.Project, error) {
	var projects []models.Project

	var viewer models.User
	if err := db.DB.Where("email = ?", viewerEmail).First(&viewer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return projects, nil
		}
		return nil, err
	}

	query := db.DB.Preload("Owner").Where("owner_id <> ?", viewer.ID)

	if frontend && backend {
		// Permissive union: no skill filtering.
	} else if frontend {
		query = query.Where("frontend = ?", true)
	} else if backend {
		query = query.Where("backend = ?", true)
	}

	hidden := []string{models.MembershipPending, models.MembershipAccepted}
	if types.HideRejectedProjects {
		hidden = append(hidden, models.MembershipRejected)
	}

	interacted := db.DB.Model(&models.ProjectMembership{}).
		Select("project_id").
		Where("user_id = ? AND status IN ?", viewer.ID, hidden)

	err := query.Where("id NOT IN (?)", interacted).Find(&projects).Error

	return projects, err
}

// OwnedProjects lists the projects created by the given user. Unknown email
// yields an empty list.
func OwnedProjects(ownerEmail string) ([]models.Project, error) {
	var projects []models.Project

	var owner models.User
	if err := db.DB.Where("email = ?", ownerEmail).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return projects, nil
		}
		return nil, err
	}

	err := db.DB.Preload("Owner").Where("owner_id = ?", owner.ID).Find(&projects).Error

	return projects, err
}

// CreateProject registers a new project for the owner. The (owner, name)
// pair must be unique.
func CreateProject(ownerEmail, name, description string, frontend, backend bool) (models.Project, error) {
	var project models.Project

	owner, err := findUserByEmail(ownerEmail, "email")
	if err != nil {
		return project, err
	}

	var existing models.Project
	err = db.DB.Where("owner_id = ? AND name = ?", owner.ID, name).First(&existing).Error

	if err == nil {
		return project, apperror.Conflict("projectname", "You already have a project with this name")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return project, err
	}

	project = models.Project{
		OwnerID:     owner.ID,
		Name:        name,
		Description: description,
		Frontend:    frontend,
		Backend:     backend,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return project, apperror.Conflict("projectname", "You already have a project with this name")
		}
		return project, err
	}

	project.Owner = owner

	return project, nil
}

// ProjectCounts aggregates per-user totals: projects created, projects
// joined, and join requests still pending.
func ProjectCounts(email string) (types.ProjectCountResponse, error) {
	var counts types.ProjectCountResponse

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return counts, apperror.NotFound("email", "User not found")
		}
		return counts, err
	}

	if err := db.DB.Model(&models.Project{}).
		Where("owner_id = ?", user.ID).
		Count(&counts.CreatedProjects).Error; err != nil {
		return counts, err
	}

	if err := db.DB.Model(&models.ProjectMembership{}).
		Where("user_id = ? AND status = ?", user.ID, models.MembershipAccepted).
		Count(&counts.JoinedProjects).Error; err != nil {
		return counts, err
	}

	if err := db.DB.Model(&models.ProjectMembership{}).
		Where("user_id = ? AND status = ?", user.ID, models.MembershipPending).
		Count(&counts.PendingRequests).Error; err != nil {
		return counts, err
	}

	return counts, nil
}

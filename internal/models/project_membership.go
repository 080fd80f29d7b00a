package models

import (
	"time"

	"gorm.io/gorm"
)

// Membership lifecycle states. A (project, user) pair has at most one row,
// moving pending -> accepted or pending -> rejected. A rejected row may
// return to pending if the user re-applies.
const (
	MembershipPending  = "pending"
	MembershipAccepted = "accepted"
	MembershipRejected = "rejected"
)

// DefaultJoinMessage is attached to a join request when the requester
// supplies no message of their own.
const DefaultJoinMessage = "I am interested in joining this project"

type ProjectMembership struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	Status      string `gorm:"not null;default:pending"`
	Message     string
	RespondedAt *time.Time

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

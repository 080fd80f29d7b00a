package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Email        string `gorm:"uniqueIndex;not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Frontend     bool   `gorm:"default:false"`
	Backend      bool   `gorm:"default:false"`
	IsActive     bool   `gorm:"default:true"`
	IsStaff      bool   `gorm:"default:false"`
	PasswordHash string `gorm:"not null"`

	// Relationships
	OwnedProjects []Project           `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Memberships   []ProjectMembership `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

package models

import "gorm.io/gorm"

// Project names are unique per owner, not globally.
type Project struct {
	gorm.Model

	OwnerID     uint   `gorm:"not null;uniqueIndex:idx_owner_projectname"`
	Name        string `gorm:"not null;uniqueIndex:idx_owner_projectname"`
	Description string
	Frontend    bool `gorm:"default:false"`
	Backend     bool `gorm:"default:false"`

	// Relationships
	Owner       User                `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Memberships []ProjectMembership `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// RevokedToken blacklists a refresh token by its jti claim. Rows older than
// ExpiresAt are safe to purge since the token itself is no longer valid.
type RevokedToken struct {
	gorm.Model

	JTI       string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

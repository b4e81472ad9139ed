package model

import (
	"time"

	"github.com/google/uuid"
)

// Admin is the root of a tenancy. Every field agent belongs to exactly one
// admin, and the admin → user → area map chain is the only authorization
// boundary in the system.
type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Admin) TableName() string { return "admins" }

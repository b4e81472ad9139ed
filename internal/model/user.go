package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a field agent managed by exactly one admin.
// Username is unique across all tenants; email is derived from it at
// creation time and carries no uniqueness guarantee.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	// AdminID keeps the id_admin column name of the original schema.
	AdminID   uuid.UUID `gorm:"column:id_admin;type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Admin *Admin `gorm:"foreignKey:AdminID"`
}

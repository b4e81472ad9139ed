package model

import (
	"time"

	"github.com/google/uuid"
)

// DailyReport is a free-text report submitted by a field agent, optionally
// referencing uploaded image paths.
type DailyReport struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ReportText string    `gorm:"not null"`
	ImagePaths []string  `gorm:"serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User *User `gorm:"foreignKey:UserID"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// AreaMap is the geofence assigned to a field agent: a lat/lon center with a
// radius in meters. The unique index on UserID makes one-position-per-user a
// storage invariant, so concurrent assignments to the same agent cannot
// produce duplicate rows.
type AreaMap struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	Radius    float64   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
}

func (AreaMap) TableName() string { return "area_maps" }

// Geofence bounds (radius in meters).
const (
	MinRadius = 10
	MaxRadius = 5000
)

package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AssignPositionRequest creates or replaces the single geofence of an agent.
// Pointer fields distinguish "absent" from legitimate zero values (0° is a
// valid coordinate).
type AssignPositionRequest struct {
	UserID    string   `json:"user_id"   validate:"required,uuid"`
	Latitude  *float64 `json:"latitude"  validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Radius    *float64 `json:"radius"    validate:"required,min=10,max=5000"`
}

type UpdateRadiusRequest struct {
	Radius *float64 `json:"radius" validate:"required,min=10,max=5000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PositionResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

// MapSnapshotResponse is the payload the map front-end renders: all agents of
// the acting admin plus their assigned positions.
type MapSnapshotResponse struct {
	Users     []UserResponse     `json:"users"`
	Positions []PositionResponse `json:"positions"`
}

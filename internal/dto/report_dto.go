package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SubmitReportRequest struct {
	UserID     string   `json:"user_id"     validate:"required,uuid"`
	ReportText string   `json:"report_text" validate:"required,min=1"`
	ImagePaths []string `json:"image_paths" validate:"omitempty,dive,required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReportResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ReportText string    `json:"report_text"`
	ImagePaths []string  `json:"image_paths"`
	CreatedAt  time.Time `json:"created_at"`
}

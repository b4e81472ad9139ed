package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eljyoussef/POINTAGE-APP/internal/dto"
	"github.com/Eljyoussef/POINTAGE-APP/internal/model"
	"github.com/Eljyoussef/POINTAGE-APP/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService handles daily reports submitted by field agents and their
// owner-scoped listing on the admin side.
type ReportService interface {
	Submit(ctx context.Context, req dto.SubmitReportRequest) (*dto.ReportResponse, error)
	// ListReports returns the reports of all agents owned by the admin, or of
	// a single owned agent when userID is non-nil.
	ListReports(ctx context.Context, adminID uuid.UUID, userID *uuid.UUID) ([]dto.ReportResponse, error)
}

type reportService struct {
	users   repository.UserRepository
	reports repository.DailyReportRepository
}

func NewReportService(users repository.UserRepository, reports repository.DailyReportRepository) ReportService {
	return &reportService{users: users, reports: reports}
}

func mapReport(r model.DailyReport) dto.ReportResponse {
	return dto.ReportResponse{
		ID:         r.ID.String(),
		UserID:     r.UserID.String(),
		ReportText: r.ReportText,
		ImagePaths: r.ImagePaths,
		CreatedAt:  r.CreatedAt,
	}
}

func (s *reportService) Submit(ctx context.Context, req dto.SubmitReportRequest) (*dto.ReportResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user_id must be a UUID", ErrValidation)
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	report := &model.DailyReport{
		UserID:     userID,
		ReportText: req.ReportText,
		ImagePaths: req.ImagePaths,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	resp := mapReport(*report)
	return &resp, nil
}

func (s *reportService) ListReports(ctx context.Context, adminID uuid.UUID, userID *uuid.UUID) ([]dto.ReportResponse, error) {
	var (
		reports []model.DailyReport
		err     error
	)
	if userID != nil {
		// Filtering by agent requires the agent to be owned; a foreign agent
		// reads the same as a nonexistent one.
		if _, err := s.users.FindOwned(ctx, *userID, adminID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: user not found or unauthorized", ErrNotFound)
			}
			return nil, err
		}
		reports, err = s.reports.ListByUser(ctx, *userID)
	} else {
		reports, err = s.reports.ListByAdmin(ctx, adminID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		resp = append(resp, mapReport(r))
	}
	return resp, nil
}

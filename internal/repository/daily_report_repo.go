package repository

import (
	"context"

	"github.com/Eljyoussef/POINTAGE-APP/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DailyReportRepository interface {
	Create(ctx context.Context, r *model.DailyReport) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.DailyReport, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.DailyReport, error)
}

type dailyReportRepo struct{ db *gorm.DB }

func NewDailyReportRepository(db *gorm.DB) DailyReportRepository {
	return &dailyReportRepo{db: db}
}

func (r *dailyReportRepo) Create(ctx context.Context, rep *model.DailyReport) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *dailyReportRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reports).Error
	return reports, err
}

func (r *dailyReportRepo) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = daily_reports.user_id").
		Where("users.id_admin = ?", adminID).
		Order("daily_reports.created_at desc").
		Find(&reports).Error
	return reports, err
}

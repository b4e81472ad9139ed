package repository

import (
	"context"

	"github.com/Eljyoussef/POINTAGE-APP/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AreaMapRepository persists geofence positions. Ownership-scoped lookups
// join through users.id_admin so a position belonging to another admin's
// agent is indistinguishable from a missing one.
type AreaMapRepository interface {
	// Upsert inserts the position or, if the agent already has one, updates
	// its coordinates in place. Single conditional statement keyed on the
	// user_id unique index, so two concurrent assignments cannot both insert.
	Upsert(ctx context.Context, m *model.AreaMap) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.AreaMap, error)
	FindOwned(ctx context.Context, id, adminID uuid.UUID) (*model.AreaMap, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.AreaMap, error)
	UpdateRadius(ctx context.Context, id uuid.UUID, radius float64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type areaMapRepo struct{ db *gorm.DB }

func NewAreaMapRepository(db *gorm.DB) AreaMapRepository { return &areaMapRepo{db: db} }

func (r *areaMapRepo) Upsert(ctx context.Context, m *model.AreaMap) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "radius", "updated_at"}),
	}).Create(m).Error
}

func (r *areaMapRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.AreaMap, error) {
	var m model.AreaMap
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *areaMapRepo) FindOwned(ctx context.Context, id, adminID uuid.UUID) (*model.AreaMap, error) {
	var m model.AreaMap
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = area_maps.user_id").
		Where("area_maps.id = ? AND users.id_admin = ?", id, adminID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *areaMapRepo) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.AreaMap, error) {
	var maps []model.AreaMap
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = area_maps.user_id").
		Where("users.id_admin = ?", adminID).
		Order("area_maps.created_at asc").
		Find(&maps).Error
	return maps, err
}

func (r *areaMapRepo) UpdateRadius(ctx context.Context, id uuid.UUID, radius float64) error {
	return r.db.WithContext(ctx).
		Model(&model.AreaMap{}).
		Where("id = ?", id).
		Update("radius", radius).Error
}

func (r *areaMapRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.AreaMap{}, "id = ?", id).Error
}

package repository

import (
	"context"

	"github.com/Eljyoussef/POINTAGE-APP/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines persistence operations for field agents.
// FindOwned scopes the lookup to a single admin's tenancy; all list
// operations return rows in insertion order.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindOwned(ctx context.Context, id, adminID uuid.UUID) (*model.User, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindOwned(ctx context.Context, id, adminID uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND id_admin = ?", id, adminID).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("id_admin = ?", adminID).
		Order("created_at asc").
		Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

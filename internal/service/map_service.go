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

// MapService implements position assignment under the admin → user → area map
// ownership chain. Every operation takes the acting admin id explicitly;
// nothing is resolved from ambient state.
type MapService interface {
	// Snapshot returns all agents of the admin plus their assigned positions.
	Snapshot(ctx context.Context, adminID uuid.UUID) (*dto.MapSnapshotResponse, error)
	// AssignPosition creates or replaces the single position of an agent.
	// Field validation runs before the ownership check; first failure wins.
	AssignPosition(ctx context.Context, adminID uuid.UUID, req dto.AssignPositionRequest) (*dto.PositionResponse, error)
	UpdateRadius(ctx context.Context, adminID, positionID uuid.UUID, radius float64) (*dto.PositionResponse, error)
	DeletePosition(ctx context.Context, adminID, positionID uuid.UUID) error
	// ResolveOwnedPosition returns the position only when it transitively
	// belongs to the admin; absence and foreign ownership are conflated.
	ResolveOwnedPosition(ctx context.Context, positionID, adminID uuid.UUID) (*dto.PositionResponse, error)
}

type mapService struct {
	users repository.UserRepository
	maps  repository.AreaMapRepository
}

func NewMapService(users repository.UserRepository, maps repository.AreaMapRepository) MapService {
	return &mapService{users: users, maps: maps}
}

func mapPosition(m model.AreaMap) dto.PositionResponse {
	return dto.PositionResponse{
		ID:        m.ID.String(),
		UserID:    m.UserID.String(),
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Radius:    m.Radius,
	}
}

func (s *mapService) Snapshot(ctx context.Context, adminID uuid.UUID) (*dto.MapSnapshotResponse, error) {
	users, err := s.users.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	positions, err := s.maps.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	snap := &dto.MapSnapshotResponse{
		Users:     make([]dto.UserResponse, 0, len(users)),
		Positions: make([]dto.PositionResponse, 0, len(positions)),
	}
	for _, u := range users {
		snap.Users = append(snap.Users, mapUser(u))
	}
	for _, m := range positions {
		snap.Positions = append(snap.Positions, mapPosition(m))
	}
	return snap, nil
}

func (s *mapService) AssignPosition(ctx context.Context, adminID uuid.UUID, req dto.AssignPositionRequest) (*dto.PositionResponse, error) {
	if err := validateGeofence(req.Latitude, req.Longitude, req.Radius); err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user_id must be a UUID", ErrValidation)
	}

	user, err := s.users.FindOwned(ctx, userID, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found or unauthorized", ErrNotFound)
		}
		return nil, err
	}

	position := &model.AreaMap{
		UserID:    user.ID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Radius:    *req.Radius,
	}
	if err := s.maps.Upsert(ctx, position); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: concurrent assignment, retry", ErrConflict)
		}
		return nil, err
	}

	// Re-read by user_id: on update the surviving row keeps its original id,
	// not the id GORM put on the insert candidate.
	stored, err := s.maps.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resp := mapPosition(*stored)
	return &resp, nil
}

func (s *mapService) UpdateRadius(ctx context.Context, adminID, positionID uuid.UUID, radius float64) (*dto.PositionResponse, error) {
	if radius < model.MinRadius || radius > model.MaxRadius {
		return nil, fmt.Errorf("%w: radius must be between %d and %d meters", ErrValidation, model.MinRadius, model.MaxRadius)
	}

	position, err := s.findOwned(ctx, positionID, adminID)
	if err != nil {
		return nil, err
	}

	if err := s.maps.UpdateRadius(ctx, position.ID, radius); err != nil {
		return nil, err
	}
	position.Radius = radius
	resp := mapPosition(*position)
	return &resp, nil
}

func (s *mapService) DeletePosition(ctx context.Context, adminID, positionID uuid.UUID) error {
	position, err := s.findOwned(ctx, positionID, adminID)
	if err != nil {
		return err
	}
	return s.maps.Delete(ctx, position.ID)
}

func (s *mapService) ResolveOwnedPosition(ctx context.Context, positionID, adminID uuid.UUID) (*dto.PositionResponse, error) {
	position, err := s.findOwned(ctx, positionID, adminID)
	if err != nil {
		return nil, err
	}
	resp := mapPosition(*position)
	return &resp, nil
}

func (s *mapService) findOwned(ctx context.Context, positionID, adminID uuid.UUID) (*model.AreaMap, error) {
	position, err := s.maps.FindOwned(ctx, positionID, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: position not found or unauthorized", ErrNotFound)
		}
		return nil, err
	}
	return position, nil
}

func validateGeofence(lat, lon, radius *float64) error {
	switch {
	case lat == nil || *lat < -90 || *lat > 90:
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrValidation)
	case lon == nil || *lon < -180 || *lon > 180:
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrValidation)
	case radius == nil || *radius < model.MinRadius || *radius > model.MaxRadius:
		return fmt.Errorf("%w: radius must be between %d and %d meters", ErrValidation, model.MinRadius, model.MaxRadius)
	}
	return nil
}

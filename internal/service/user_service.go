package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/Eljyoussef/POINTAGE-APP/internal/dto"
	"github.com/Eljyoussef/POINTAGE-APP/internal/model"
	"github.com/Eljyoussef/POINTAGE-APP/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const generatedPasswordLength = 12

// EmailEnqueuer pushes a welcome email job onto the async queue. Satisfied by
// worker.Dispatcher; delivery is best-effort and never blocks user creation.
type EmailEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, toEmail, username, password string) error
}

// UserService manages field agents within a single admin's tenancy.
type UserService interface {
	// CreateUser provisions an agent with a derived email and a generated
	// password. The plaintext password is returned exactly once.
	CreateUser(ctx context.Context, adminID uuid.UUID, req dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	ListUsers(ctx context.Context, adminID uuid.UUID) ([]dto.UserResponse, error)
	ResetPassword(ctx context.Context, adminID, userID uuid.UUID, newPassword string) error
	// AgentLogin authenticates a field agent by username and password for the
	// mobile client; it returns only the agent's id.
	AgentLogin(ctx context.Context, req dto.AgentLoginRequest) (*dto.AgentLoginResponse, error)
}

type userService struct {
	users   repository.UserRepository
	emailer EmailEnqueuer
}

func NewUserService(users repository.UserRepository, emailer EmailEnqueuer) UserService {
	return &userService{users: users, emailer: emailer}
}

func mapUser(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}

func (s *userService) CreateUser(ctx context.Context, adminID uuid.UUID, req dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	// Username is unique across all tenants.
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username %q is already taken", ErrValidation, username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	password, err := generatePassword(generatedPasswordLength)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        strings.ToLower(username) + "@gmail.com",
		PasswordHash: string(hash),
		AdminID:      adminID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with another request creating the same username.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username %q is already taken", ErrConflict, username)
		}
		return nil, err
	}

	if err := s.emailer.EnqueueWelcomeEmail(ctx, user.Email, user.Username, password); err != nil {
		log.Warn().Err(err).Str("username", user.Username).Msg("failed to enqueue welcome email")
	}

	return &dto.CreateUserResponse{
		UserResponse:    mapUser(*user),
		OneTimePassword: password,
	}, nil
}

func (s *userService) ListUsers(ctx context.Context, adminID uuid.UUID) ([]dto.UserResponse, error) {
	users, err := s.users.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, mapUser(u))
	}
	return resp, nil
}

func (s *userService) ResetPassword(ctx context.Context, adminID, userID uuid.UUID, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}
	// The caller picked this user from an owned list, so its existence is
	// already known; an ownership mismatch here is a plain Forbidden.
	if user.AdminID != adminID {
		return fmt.Errorf("%w: user belongs to another admin", ErrForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}

func (s *userService) AgentLogin(ctx context.Context, req dto.AgentLoginRequest) (*dto.AgentLoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &dto.AgentLoginResponse{
		Message: "User Found",
		UserID:  user.ID.String(),
	}, nil
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generatePassword(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		b[i] = passwordAlphabet[n.Int64()]
	}
	return string(b), nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Eljyoussef/POINTAGE-APP/internal/config"
	"github.com/Eljyoussef/POINTAGE-APP/internal/dto"
	"github.com/Eljyoussef/POINTAGE-APP/internal/model"
	"github.com/Eljyoussef/POINTAGE-APP/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates admins and issues JWT token pairs. It is the
// identity provider for every ownership-scoped operation: the admin id it
// embeds in tokens is passed explicitly into the other services.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	admins repository.AdminRepository
	cfg    *config.Config
}

func NewAuthService(admins repository.AdminRepository, cfg *config.Config) AuthService {
	return &authService{admins: admins, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.tokenPair(admin)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: refresh token invalid or expired", ErrInvalidCredentials)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: malformed token claims", ErrInvalidCredentials)
	}
	adminIDStr, ok := claims["admin_id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: malformed token", ErrInvalidCredentials)
	}
	aid, err := uuid.Parse(adminIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed token", ErrInvalidCredentials)
	}

	admin, err := s.admins.FindByID(ctx, aid)
	if err != nil {
		return nil, fmt.Errorf("%w: admin not found", ErrInvalidCredentials)
	}

	return s.tokenPair(admin)
}

func (s *authService) tokenPair(admin *model.Admin) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(admin, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(admin, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Admin: dto.AdminResponse{
			ID:       admin.ID.String(),
			Username: admin.Username,
			Email:    admin.Email,
		},
	}, nil
}

func (s *authService) generateToken(admin *model.Admin, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": admin.ID.String(),
		"username": admin.Username,
		"email":    admin.Email,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

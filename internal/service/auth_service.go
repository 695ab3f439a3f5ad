package service

import (
	"context"
	"errors"

	"technext-be/internal/apperr"
	"technext-be/internal/jwt"
	"technext-be/internal/models"
	"technext-be/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService defines the authentication business logic
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials against an ACTIVE account and issues a token.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindActiveByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &models.LoginResponse{
		User:  user,
		Token: token,
	}, nil
}

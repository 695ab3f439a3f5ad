package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"technext-be/internal/apperr"
	"technext-be/internal/entities"
	"technext-be/internal/models"
	"technext-be/internal/repository"
	"technext-be/internal/upload"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// UserService defines the business logic for user accounts
type UserService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error)
	List(ctx context.Context, filter *models.UserFilter, opts *models.PaginationOptions) (*models.UserListResponse, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetMyProfile(ctx context.Context, id string) (*entities.User, error)
	Update(ctx context.Context, id string, patch *models.UpdateUserRequest, file *multipart.FileHeader) (*entities.User, error)
	Deactivate(ctx context.Context, id string) error
}

type userService struct {
	repo    repository.UserRepository
	uploads upload.Store
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepository, uploads upload.Store) UserService {
	return &userService{
		repo:    repo,
		uploads: uploads,
	}
}

// Create registers a privileged account. Fails with a conflict when an
// ACTIVE user already holds the email; an INACTIVE holder does not block
// re-registration.
func (s *userService) Create(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error) {
	existing, err := s.repo.FindActiveByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &entities.User{
		Email:         req.Email,
		Password:      string(hashed),
		FullName:      req.FullName,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Country:       req.Country,
		Role:          req.Role,
	})
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// List returns ACTIVE users with role USER only, whatever the filter says
func (s *userService) List(ctx context.Context, filter *models.UserFilter, opts *models.PaginationOptions) (*models.UserListResponse, error) {
	if opts.Page < 1 {
		opts.Page = defaultPage
	}
	if opts.Limit < 1 {
		opts.Limit = defaultLimit
	}

	users, total, err := s.repo.List(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*entities.User{}
	}

	return &models.UserListResponse{
		Meta: models.ListMeta{
			Page:  opts.Page,
			Limit: opts.Limit,
			Total: total,
		},
		Data: users,
	}, nil
}

// GetByID fetches a profile by id. INACTIVE users are served here on
// purpose; see the repository note on the asymmetry with GetMyProfile.
func (s *userService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return s.repo.FindByID(ctx, id)
}

// GetMyProfile fetches the caller's profile, ACTIVE accounts only
func (s *userService) GetMyProfile(ctx context.Context, id string) (*entities.User, error) {
	return s.repo.FindActiveByID(ctx, id)
}

// Update patches an ACTIVE user's profile. When an image file is supplied it
// is stored first and its public URL replaces the profile image. An upload
// that succeeds before a failing database write is not rolled back.
func (s *userService) Update(ctx context.Context, id string, patch *models.UpdateUserRequest, file *multipart.FileHeader) (*entities.User, error) {
	if _, err := s.repo.FindActiveByID(ctx, id); err != nil {
		return nil, err
	}

	var profileImage *string
	if file != nil {
		imageURL, err := s.uploads.Save(ctx, file)
		if err != nil {
			return nil, err
		}
		profileImage = &imageURL
	}

	return s.repo.Update(ctx, id, patch, profileImage)
}

// Deactivate soft-deletes the account
func (s *userService) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

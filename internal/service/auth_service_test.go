package service

import (
	"context"
	"testing"
	"time"

	"technext-be/internal/apperr"
	"technext-be/internal/entities"
	"technext-be/internal/jwt"
	"technext-be/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (AuthService, *fakeUserRepo, *jwt.JWTService) {
	t.Helper()
	repo := newFakeUserRepo()
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, jwtService), repo, jwtService
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) *entities.User {
	t.Helper()
	userSvc := NewUserService(repo, &fakeUploadStore{})
	user, err := userSvc.Create(context.Background(), &models.CreateUserRequest{
		Email:    email,
		Password: password,
		Role:     entities.RoleUser,
	})
	require.NoError(t, err)
	return user
}

func TestAuthServiceLogin(t *testing.T) {
	svc, repo, jwtService := newTestAuthService(t)
	seedUser(t, repo, "jane@example.com", "supersecret")

	result, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Empty(t, result.User.Password)

	claims, err := jwtService.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, entities.RoleUser, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedUser(t, repo, "jane@example.com", "supersecret")

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAuthServiceLoginDeactivatedAccount(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	user := seedUser(t, repo, "jane@example.com", "supersecret")
	require.NoError(t, repo.Deactivate(context.Background(), user.ID))

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "jane@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

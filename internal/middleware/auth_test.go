package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"technext-be/internal/entities"
	"technext-be/internal/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter(jwtService *jwt.JWTService, roles ...entities.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Auth(jwtService, roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(ContextUserID),
		})
	})
	return router
}

func TestAuthRejectsMissingToken(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	router := authTestRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	router := authTestRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	router := authTestRouter(jwtService)

	token, err := jwtService.GenerateToken("user-1", "jane@example.com", entities.RoleUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthAcceptsSessionCookie(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	router := authTestRouter(jwtService)

	token, err := jwtService.GenerateToken("user-1", "jane@example.com", entities.RoleUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthEnforcesRoleAllowList(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	router := authTestRouter(jwtService, entities.RoleAdmin, entities.RoleSuperAdmin)

	token, err := jwtService.GenerateToken("user-1", "jane@example.com", entities.RoleUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := jwtService.GenerateToken("admin-1", "root@example.com", entities.RoleSuperAdmin)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

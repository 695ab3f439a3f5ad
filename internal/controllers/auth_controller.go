package controllers

import (
	"net/http"

	"technext-be/internal/middleware"
	"technext-be/internal/models"
	"technext-be/internal/response"
	"technext-be/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
	cookieTTL   int // seconds
}

func NewAuthController(authService service.AuthService, cookieTTL int) *AuthController {
	return &AuthController{
		authService: authService,
		cookieTTL:   cookieTTL,
	}
}

// Login handles POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	result, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, result.Token, ac.cookieTTL, "/", "", false, true)

	response.OK(c, http.StatusOK, "Logged in successfully", result)
}

// Logout handles POST /api/v1/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

	response.OK(c, http.StatusOK, "Logged out successfully", nil)
}

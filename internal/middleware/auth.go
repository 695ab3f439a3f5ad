package middleware

import (
	"strings"

	"technext-be/internal/apperr"
	"technext-be/internal/entities"
	"technext-be/internal/jwt"
	"technext-be/internal/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "token"

// Auth validates the session token and, when roles are given, enforces the
// role allow-list. The token is read from the session cookie or from a
// Bearer Authorization header.
func Auth(jwtService *jwt.JWTService, roles ...entities.UserRole) gin.HandlerFunc {
	allowed := make(map[entities.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, apperr.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Error(c, apperr.ErrUnauthorized)
			c.Abort()
			return
		}

		if len(allowed) > 0 && !allowed[claims.Role] {
			response.Error(c, apperr.ErrForbidden)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

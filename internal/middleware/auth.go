package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	domainUser "device-checkout/internal/domain/user"
	"device-checkout/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
	ContextIsAdminKey  = "isAdmin"
	ContextTokenKey    = "sessionToken"
)

// SessionResolver authenticates a bearer token against live sessions.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domainUser.User, error)
}

// AuthMiddleware requires a valid bearer session on every request.
func AuthMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		token := parts[1]

		u, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainUser.ErrUserInactive) {
				utils.ErrorResponse(c, http.StatusForbidden, "User account is inactive")
			} else {
				utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, u.ID)
		c.Set(ContextUsernameKey, u.Username)
		c.Set(ContextIsAdminKey, u.IsAdmin)
		c.Set(ContextTokenKey, token)

		c.Next()
	}
}

// AdminOnly rejects sessions without the admin flag.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(ContextIsAdminKey)
		if !exists || !isAdmin.(bool) {
			utils.ErrorResponse(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

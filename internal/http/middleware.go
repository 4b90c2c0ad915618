package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/domain"
	"bookshelf-api/internal/service"
)

const userContextKey = "currentUser"

// requireAuth verifies the bearer token, resolves the embedded user
// against the store and attaches the record to the request context.
// Every route except registration and login runs behind it.
func (h *Handler) requireAuth() gin.HandlerFunc {
	const prefix = "Bearer "

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) || strings.TrimSpace(header[len(prefix):]) == "" {
			h.unauthorized(c, "missing token")
			return
		}

		claims, err := h.tokens.Parse(strings.TrimSpace(header[len(prefix):]))
		if err != nil {
			h.unauthorized(c, "invalid or expired token")
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				h.unauthorized(c, "user no longer exists")
				return
			}
			h.respondError(c, err)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// currentUser returns the authenticated user attached by requireAuth.
func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

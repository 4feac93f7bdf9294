// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/service"
	"github.com/piggybank/backend/internal/domain/entity"
	"github.com/piggybank/backend/internal/integration/entrypoint/dto"
)

// actorKey is the gin context key for the authenticated user.
const actorKey = "actor"

// AuthMiddleware provides JWT authentication middleware. Beyond validating
// the token it loads the full user row, so handlers always act on current
// role and protection flags rather than on stale claims.
type AuthMiddleware struct {
	tokens adapter.TokenService
	users  *service.UserService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokens adapter.TokenService, users *service.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT
// authentication and resolves the acting user.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authorization header is required"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid or expired token"})
			c.Abort()
			return
		}

		// the token may outlive the account
		actor, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "user no longer exists"})
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// GetActor extracts the authenticated user from the Gin context.
func GetActor(c *gin.Context) (*entity.User, bool) {
	value, exists := c.Get(actorKey)
	if !exists {
		return nil, false
	}
	actor, ok := value.(*entity.User)
	return actor, ok
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	pauth "github.com/yigit/welearn/internal/app/auth"
	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/pkg/auth"
	"github.com/yigit/welearn/internal/pkg/logger"
)

const actorKey = "actor"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth middleware for JWT token validation. The resolved actor is
// stored in the context for GetActor.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// Swagger UI sometimes sends the token as a query parameter
		if authHeader == "" {
			authHeader = c.Query("token")
		}

		if authHeader == "" {
			HandleAPIError(c, pauth.ErrNotAuthenticated)
			c.Abort()
			return
		}

		// Accept a raw JWT for Swagger UI convenience
		tokenString := strings.Trim(authHeader, "\"'")
		if !(strings.Count(tokenString, ".") == 2 && !strings.Contains(tokenString, " ")) {
			var err error
			tokenString, err = auth.ExtractBearerToken(tokenString)
			if err != nil {
				HandleAPIError(c, err)
				c.Abort()
				return
			}
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			logger.Warn().Err(err).Str("path", c.FullPath()).Msg("Rejected session token")
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		actor := claims.Actor()
		c.Set(actorKey, &actor)

		c.Next()
	}
}

// RoleRequired middleware to check if user has required role.
// It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(requiredRole models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil {
			HandleAPIError(c, pauth.ErrNotAuthenticated)
			c.Abort()
			return
		}

		if actor.Role != requiredRole {
			logger.Warn().
				Int64("actorID", actor.ID).
				Str("role", string(actor.Role)).
				Str("required", string(requiredRole)).
				Str("path", c.FullPath()).
				Msg("Role check failed")
			HandleAPIError(c, pauth.ErrNotTeacher.WithStatusMsg("requires role "+string(requiredRole)))
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetActor returns the authenticated actor, or nil when the route is public.
func GetActor(c *gin.Context) *models.Actor {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	actor, _ := v.(*models.Actor)
	return actor
}

package middleware

import (
	"net/http"
	"strings"

	"simhire-backend/internal/delivery/http/response"
	"simhire-backend/internal/domain"
	"simhire-backend/pkg/auth"
	"simhire-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts a bearer token signed by issuer whose id has not been revoked.
func AuthMiddleware(issuer *auth.Issuer, denylist domain.TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if authHeader == "" || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			logger.Log.DebugContext(c.Request.Context(), "token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Redis trouble must not lock everyone out
			logger.Log.WarnContext(c.Request.Context(), "token denylist unavailable", "error", err)
		}
		if revoked {
			response.Error(c, http.StatusUnauthorized, "Token has been revoked", nil)
			c.Abort()
			return
		}

		role := claims.Role
		if role == "" {
			role = domain.RoleCandidate // Fallback
		}

		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserEmail), claims.Email)
		c.Set(string(domain.KeyUserRole), role)
		c.Set(string(domain.KeyTokenID), claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(string(domain.KeyTokenExp), claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated role is one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[c.GetString(string(domain.KeyUserRole))] {
			response.Error(c, http.StatusForbidden, "You do not have access to this resource", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

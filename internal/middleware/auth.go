package middleware

import (
	"net/http"
	"strings"

	"attendly/config"
	"attendly/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired and read by the role middleware, the rate
// limiter and the handlers.
const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
)

// AuthRequired validates the bearer token and stores the session identity in
// the request context.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireRole checks that the authenticated user has one of the allowed roles.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// GetUserID returns the authenticated user ID from context, zero when the
// request is unauthenticated.
func GetUserID(c *gin.Context) uint {
	v, _ := c.Get(ctxUserID)
	if id, ok := v.(uint); ok {
		return id
	}
	return 0
}

// GetRole returns the authenticated role from context, empty when the request
// is unauthenticated.
func GetRole(c *gin.Context) string {
	v, _ := c.Get(ctxRole)
	if role, ok := v.(string); ok {
		return role
	}
	return ""
}

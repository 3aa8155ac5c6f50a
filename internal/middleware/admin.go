package middleware

import (
	"attendly/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired restricts a route to the ADMIN role.
func AdminRequired() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

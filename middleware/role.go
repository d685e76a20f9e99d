package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Principal roles issued by the auth collaborator.
const (
	RoleHost  = "host"
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RequireRole rejects requests whose principal does not carry one of the
// allowed roles. Must run after PrincipalAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := PrincipalRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}

package middleware

import (
	"net/http"
	"strings"

	"meetbook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by PrincipalAuthMiddleware.
const (
	CtxPrincipalID   = "principalID"
	CtxPrincipalRole = "principalRole"
)

// PrincipalAuthMiddleware extracts the authenticated principal from a Bearer
// token issued by the external auth service. Tokens are consumed, never
// minted, here.
func PrincipalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		principal, err := utils.ExtractPrincipal(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(CtxPrincipalID, principal.ID)
		c.Set(CtxPrincipalRole, principal.Role)
		c.Next()
	}
}

// PrincipalID returns the authenticated principal id from the context.
func PrincipalID(c *gin.Context) string {
	return c.GetString(CtxPrincipalID)
}

// PrincipalRole returns the authenticated principal role from the context.
func PrincipalRole(c *gin.Context) string {
	return c.GetString(CtxPrincipalRole)
}

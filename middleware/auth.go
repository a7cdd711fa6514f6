package middleware

import (
	"net/http"
	"strings"

	"workhive/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the identity middleware.
const (
	CtxActorID = "actorID"
	CtxRole    = "actorRole"
)

// JWTAuthMiddleware resolves the identity context for a request: actor
// id and role from a Bearer token. Everything downstream trusts this
// context and performs ownership checks against it.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		actorID, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set(CtxActorID, actorID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// RequireRole gates a route group to one role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This action requires the " + role + " role",
			})
			return
		}
		c.Next()
	}
}

// Identity pulls the resolved actor id and role off the context.
func Identity(c *gin.Context) (string, string) {
	return c.GetString(CtxActorID), c.GetString(CtxRole)
}

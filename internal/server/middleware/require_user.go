package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUser rejects anonymous requests with 403. It must run after
// DeserializeUser on the same chain.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if PrincipalFromContext(c) == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

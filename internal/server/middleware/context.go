package middleware

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/security"
)

const principalKey = "auth.principal"

func setPrincipal(c *gin.Context, p *security.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFromContext returns the authenticated principal for the request,
// or nil when the request is anonymous.
func PrincipalFromContext(c *gin.Context) *security.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, ok := v.(*security.Principal)
	if !ok {
		return nil
	}
	return p
}

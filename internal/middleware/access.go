package middleware

import (
	"tiendapos/internal/apierror"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
)

const AccessKey = "access"

// RequireAccess resolves the operator's role and tenant from persisted state
// and authorizes the route's action. Resolution happens per request so that a
// suspension or a role change takes effect immediately, without waiting for
// the token to expire.
func RequireAccess(resolver service.AccessService, action service.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, err := resolver.Resolve(c.Request.Context(), GetOperatorID(c))
		if err != nil {
			c.AbortWithStatusJSON(apierror.Status(err), apierror.Envelope(err))
			return
		}
		if err := resolver.Authorize(access, action); err != nil {
			c.AbortWithStatusJSON(apierror.Status(err), apierror.Envelope(err))
			return
		}
		c.Set(AccessKey, access)
		c.Next()
	}
}

// GetAccess retrieves the resolved access tuple from the Gin context.
func GetAccess(c *gin.Context) *service.Access {
	access, _ := c.MustGet(AccessKey).(*service.Access)
	return access
}

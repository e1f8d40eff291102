package middleware

import (
	"blog-api/auth"
	"blog-api/helper"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

var HTTPHelper = helper.NewHTTPHelper()

// AuthMiddleware resolves the identity cookie to a stored user and keeps
// the identity, with the stored role, in the context for the handlers.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			HTTPHelper.SendUnauthorizedError(c, "authentication required")
			c.Abort()
			return
		}

		identity, _, err := authService.Identify(c.Request.Context(), token)
		if err != nil {
			HTTPHelper.SendServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(helper.IdentityKey, identity)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			HTTPHelper.SendUnauthorizedError(c, "authentication required")
			c.Abort()
			return
		}
		if !identity.IsAdmin() {
			HTTPHelper.SendForbiddenError(c, "admin only")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity returns nil when the request carries no verified identity.
func GetIdentity(c *gin.Context) *auth.Identity {
	value, exists := c.Get(helper.IdentityKey)
	if !exists {
		return nil
	}
	identity, _ := value.(*auth.Identity)
	return identity
}

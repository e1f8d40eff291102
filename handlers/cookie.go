package handlers

import (
	"net/http"
	"time"

	"blog-api/auth"

	"github.com/gin-gonic/gin"
)

type CookieOptions struct {
	Secure bool
}

func (o CookieOptions) set(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", o.Secure, true)
}

func (o CookieOptions) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", o.Secure, true)
}

package middleware

import (
	"blog-api/helper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

// RequestID keeps an incoming X-Request-ID when it looks sane and generates
// one otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(helper.RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Set(helper.RequestIDKey, id)
		c.Header(helper.RequestIDHeader, id)
		c.Next()
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"blog-api/helper"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one line per request. Query strings are left out
// so search terms and ids are not copied into the logs.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(helper.RequestIDKey),
		}
		if identity := GetIdentity(c); identity != nil {
			attrs = append(attrs, "user_id", identity.UserID)
		}

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "http request", attrs...)
	}
}

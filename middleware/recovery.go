package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"blog-api/helper"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the generic 500 envelope.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			"error", fmt.Sprint(recovered),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(helper.RequestIDKey),
		)
		HTTPHelper.SendError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		c.Abort()
	})
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"blog-api/helper"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	Helper *helper.HTTPHelper
}

func NewHealthHandler(db *gorm.DB, httpHelper *helper.HTTPHelper) *HealthHandler {
	return &HealthHandler{db: db, Helper: httpHelper}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.Helper.SendError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	h.Helper.SendSuccess(c, "healthy", gin.H{"status": "healthy"})
}

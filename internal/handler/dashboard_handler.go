package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/video-platform-go/internal/middleware"
	"github.com/streamhub/video-platform-go/internal/service"
)

// DashboardHandler serves owner-facing channel analytics.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats serves GET /api/v1/dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	stats, err := h.dashboard.Stats(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, stats, "channel stats fetched successfully")
}

// Videos serves GET /api/v1/dashboard/videos.
func (h *DashboardHandler) Videos(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	videos, err := h.dashboard.Videos(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, videos, "channel videos fetched successfully")
}

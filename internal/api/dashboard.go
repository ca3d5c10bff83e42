package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/middleware"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/service"
	"go.uber.org/zap"
)

type DashboardService interface {
	ChannelStats(ctx context.Context, requester uuid.UUID) (*models.ChannelStats, error)
	ChannelVideos(ctx context.Context, requester uuid.UUID, page models.PageRequest) (*models.Page[models.ChannelVideo], error)
}

// DashboardHandler always reports on the caller's own channel; there is no
// channel id in the path.
type DashboardHandler struct {
	dashboard DashboardService
	paging    service.Paging
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard DashboardService, paging service.Paging, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, paging: paging, logger: logger}
}

// Stats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	st, err := h.dashboard.ChannelStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, st, "Channel stats fetched successfully")
}

// Videos handles GET /api/v1/dashboard/videos
func (h *DashboardHandler) Videos(c *gin.Context) {
	page, err := h.paging.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	res, err := h.dashboard.ChannelVideos(c.Request.Context(), middleware.GetUserID(c), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, res, "Channel videos fetched successfully")
}

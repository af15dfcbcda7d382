package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/internal/service"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// DashboardHandler headline counts.
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Counts GET /api/v1/admin/dashboard
func (h *DashboardHandler) Counts(c *gin.Context) {
	counts, err := h.dashboardSvc.Counts(c.Request.Context())
	if err != nil {
		respondRemote(c, 19001, "Không tải được số liệu tổng quan.", err)
		return
	}
	response.OK(c, counts)
}

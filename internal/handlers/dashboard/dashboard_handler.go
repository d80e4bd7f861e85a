// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"net/http"

	"crm-service/internal/pkg/response"
	"crm-service/internal/service/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *dashboard.Service
}

func NewDashboardHandler(dashboardService *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the KPI snapshot, activity feed and the 14-day chart in
// one payload.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load dashboard stats", nil)
		return
	}
	response.Success(c, http.StatusOK, "dashboard stats retrieved", stats)
}

package handlers

import (
	"net/http"

	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/store"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the aggregated dashboard view from the
// session snapshot.
type dashboardHandler struct {
	reportingService portssvc.ReportingSvcFacade
	stores           *store.Manager
}

// registerDashboardRoutes registers the dashboard route.
func registerDashboardRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, stores *store.Manager) {
	h := &dashboardHandler{reportingService: reportingService, stores: stores}
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Get dashboard summary
// @Description Returns revenue totals, the six-month trend, top clients,
// @Description status distribution, counts and recent activity
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	s, _, ok := session(c, h.stores)
	if !ok {
		return
	}

	dashboard := h.reportingService.BuildDashboard(s.Clients(), s.Projects(), s.Invoices(), s.Activity())
	c.JSON(http.StatusOK, dashboard)
}

package handler

import (
	"net/http"

	"github.com/chadmarket/backoffice/internal/service"
)

// DashboardHandler serves the KPI and chart aggregations.
type DashboardHandler struct {
	dashboard *service.Dashboard
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(dashboard *service.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats returns the four headline counts. Partial backend failures degrade
// individual numbers instead of failing the request, so this always answers
// 200.
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboard.Stats(r.Context()))
}

// Charts returns the registration trend and listing distributions.
// GET /api/v1/dashboard/charts
func (h *DashboardHandler) Charts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboard.Charts(r.Context()))
}

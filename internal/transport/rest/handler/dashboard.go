package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"stakehub/internal/service"
)

// DashboardHandler serves the overview aggregates
type DashboardHandler struct {
	dashboardSvc *service.DashboardService
	log          *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardSvc *service.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc, log: log}
}

// Get handles GET /v1/dashboard
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	d, err := h.dashboardSvc.Build(r.Context(), ownerID, time.Now())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

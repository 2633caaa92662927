package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"stakehub/internal/model"
	"stakehub/internal/service"
)

// EngagementHandler handles engagement endpoints
type EngagementHandler struct {
	engagementSvc *service.EngagementService
	log           *zap.Logger
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(engagementSvc *service.EngagementService, log *zap.Logger) *EngagementHandler {
	return &EngagementHandler{engagementSvc: engagementSvc, log: log}
}

// List handles GET /v1/engagements
func (h *EngagementHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := model.EngagementFilter{
		Status:        model.EngagementStatus(q.Get("status")),
		StakeholderID: q.Get("stakeholder"),
		Type:          model.EngagementType(q.Get("type")),
		Upcoming:      queryBool(r, "upcoming"),
		Overdue:       queryBool(r, "overdue"),
	}

	page, err := h.engagementSvc.List(r.Context(), ownerID, filter, queryInt(r, "page", 1), time.Now())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Create handles POST /v1/engagements
func (h *EngagementHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var e model.Engagement
	if !decodeBody(w, r, &e) {
		return
	}
	e.ID = ""

	created, err := h.engagementSvc.Create(r.Context(), ownerID, &e)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Get handles GET /v1/engagements/{id}
func (h *EngagementHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	e, err := h.engagementSvc.Get(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// Update handles PUT /v1/engagements/{id}
func (h *EngagementHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var e model.Engagement
	if !decodeBody(w, r, &e) {
		return
	}
	e.ID = mux.Vars(r)["id"]

	updated, err := h.engagementSvc.Update(r.Context(), ownerID, &e)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

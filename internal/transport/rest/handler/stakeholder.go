package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"stakehub/internal/model"
	"stakehub/internal/priority"
	"stakehub/internal/service"
)

const defaultPriorityLimit = 10

// StakeholderHandler handles stakeholder endpoints
type StakeholderHandler struct {
	stakeholderSvc  *service.StakeholderService
	relationshipSvc *service.RelationshipService
	log             *zap.Logger
}

// NewStakeholderHandler creates a new stakeholder handler
func NewStakeholderHandler(stakeholderSvc *service.StakeholderService, relationshipSvc *service.RelationshipService, log *zap.Logger) *StakeholderHandler {
	return &StakeholderHandler{
		stakeholderSvc:  stakeholderSvc,
		relationshipSvc: relationshipSvc,
		log:             log,
	}
}

// StakeholderRequest is the body for create and update
type StakeholderRequest struct {
	model.Stakeholder
	GenerateInsights bool `json:"generateInsights"`
}

// List handles GET /v1/stakeholders
func (h *StakeholderHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := model.StakeholderFilter{
		Search:           strings.TrimSpace(q.Get("search")),
		Influence:        priority.Level(q.Get("influence")),
		Category:         model.Category(q.Get("category")),
		HighPriorityOnly: q.Get("priority") == "high",
	}

	page, err := h.stakeholderSvc.List(r.Context(), ownerID, filter, queryInt(r, "page", 1))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Create handles POST /v1/stakeholders
func (h *StakeholderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req StakeholderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	st := req.Stakeholder
	st.ID = ""

	created, err := h.stakeholderSvc.Create(r.Context(), ownerID, &st, req.GenerateInsights)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.NewStakeholderView(created))
}

// Get handles GET /v1/stakeholders/{id}
func (h *StakeholderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	st, err := h.stakeholderSvc.Get(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NewStakeholderView(st))
}

// Update handles PUT /v1/stakeholders/{id}
func (h *StakeholderHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req StakeholderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	st := req.Stakeholder
	st.ID = mux.Vars(r)["id"]

	updated, err := h.stakeholderSvc.Update(r.Context(), ownerID, &st, req.GenerateInsights)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NewStakeholderView(updated))
}

// Delete handles DELETE /v1/stakeholders/{id}
func (h *StakeholderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := h.stakeholderSvc.Delete(r.Context(), ownerID, mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Options handles GET /v1/stakeholders/options
func (h *StakeholderHandler) Options(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	options, err := h.stakeholderSvc.Options(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"stakeholders": options})
}

// Priority handles GET /v1/stakeholders/priority
func (h *StakeholderHandler) Priority(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	entries, err := h.stakeholderSvc.TopPriority(r.Context(), ownerID, queryInt(r, "limit", defaultPriorityLimit))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// Relationships handles GET /v1/stakeholders/{id}/relationships
func (h *StakeholderHandler) Relationships(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	rels, err := h.relationshipSvc.ForStakeholder(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"relationships": rels})
}

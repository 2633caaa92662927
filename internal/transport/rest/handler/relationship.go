package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"stakehub/internal/model"
	"stakehub/internal/service"
)

// RelationshipHandler handles relationship endpoints
type RelationshipHandler struct {
	relationshipSvc *service.RelationshipService
	log             *zap.Logger
}

// NewRelationshipHandler creates a new relationship handler
func NewRelationshipHandler(relationshipSvc *service.RelationshipService, log *zap.Logger) *RelationshipHandler {
	return &RelationshipHandler{relationshipSvc: relationshipSvc, log: log}
}

// Create handles POST /v1/relationships
func (h *RelationshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var rel model.Relationship
	if !decodeBody(w, r, &rel) {
		return
	}
	rel.ID = ""

	view, err := h.relationshipSvc.Create(r.Context(), ownerID, &rel)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// Delete handles DELETE /v1/relationships/{id}
func (h *RelationshipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := h.relationshipSvc.Delete(r.Context(), ownerID, mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

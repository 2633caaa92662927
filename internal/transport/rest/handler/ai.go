package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"stakehub/internal/model"
	"stakehub/internal/service"
)

// AIHandler handles the assistant endpoints. They always answer 200 once
// input is valid: an unavailable or failing completion service shows up
// in the returned text, not the status code.
type AIHandler struct {
	engagementSvc *service.EngagementService
	insightSvc    *service.InsightService
	log           *zap.Logger
}

// NewAIHandler creates a new assistant handler
func NewAIHandler(engagementSvc *service.EngagementService, insightSvc *service.InsightService, log *zap.Logger) *AIHandler {
	return &AIHandler{
		engagementSvc: engagementSvc,
		insightSvc:    insightSvc,
		log:           log,
	}
}

// EngagementSummary handles POST /v1/ai/engagements/{id}/summary
func (h *AIHandler) EngagementSummary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req model.NotesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	summary, err := h.engagementSvc.GenerateSummary(r.Context(), ownerID, mux.Vars(r)["id"], req.Notes)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// DraftCommunication handles POST /v1/ai/draft-communication
func (h *AIHandler) DraftCommunication(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req model.DraftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	draft, err := h.insightSvc.DraftCommunication(r.Context(), ownerID, req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"draft": draft})
}

// MeetingSummary handles POST /v1/ai/meeting-summary
func (h *AIHandler) MeetingSummary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req model.NotesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	summary, err := h.insightSvc.MeetingSummary(r.Context(), ownerID, req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Strategy handles POST /v1/ai/stakeholders/{id}/strategy
func (h *AIHandler) Strategy(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	strategy, err := h.insightSvc.SuggestStrategy(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"strategy": strategy})
}

// Sentiment handles POST /v1/ai/sentiment
func (h *AIHandler) Sentiment(w http.ResponseWriter, r *http.Request) {
	var req model.TextRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sentiment, err := h.insightSvc.AnalyzeSentiment(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]model.Sentiment{"sentiment": sentiment})
}

// ActionItems handles POST /v1/ai/action-items
func (h *AIHandler) ActionItems(w http.ResponseWriter, r *http.Request) {
	var req model.TextRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items, err := h.insightSvc.ExtractActionItems(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"actionItems": items})
}

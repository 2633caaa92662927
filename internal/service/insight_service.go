package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"stakehub/internal/model"
	"stakehub/internal/repository"
)

const strategyHistorySize = 5

// InsightService serves the assistant endpoints that read stored records,
// plus the batch insight generation used by cmd/insights.
type InsightService struct {
	activity
	stakeholders repository.StakeholderRepo
	engagements  repository.EngagementRepo
	assistant    *AssistantService
	log          *zap.Logger
}

// NewInsightService creates a new insight service
func NewInsightService(stakeholders repository.StakeholderRepo, engagements repository.EngagementRepo, assistant *AssistantService, log *zap.Logger) *InsightService {
	return &InsightService{
		stakeholders: stakeholders,
		engagements:  engagements,
		assistant:    assistant,
		log:          log.Named("insights"),
	}
}

// InsightReport counts what a GenerateInsights run wrote
type InsightReport struct {
	Stakeholders int  `json:"stakeholders"`
	Engagements  int  `json:"engagements"`
	Mock         bool `json:"mock"`
}

// DraftCommunication drafts a message to one of the owner's stakeholders
func (s *InsightService) DraftCommunication(ctx context.Context, ownerID string, req model.DraftRequest) (string, error) {
	if strings.TrimSpace(req.Purpose) == "" {
		return "", validationError(errors.New("purpose is required"))
	}
	if req.CommunicationType == "" {
		req.CommunicationType = model.CommEmail
	}
	if !req.CommunicationType.Valid() {
		return "", validationError(fmt.Errorf("unknown communication type %s", req.CommunicationType))
	}

	st, err := s.stakeholder(ctx, ownerID, req.StakeholderID)
	if err != nil {
		return "", err
	}
	return s.assistant.DraftCommunication(ctx, NewCommunicationInput(st, req.CommunicationType, req.Purpose)), nil
}

// MeetingSummary summarizes notes without storing anything
func (s *InsightService) MeetingSummary(ctx context.Context, ownerID string, req model.NotesRequest) (model.EngagementSummary, error) {
	if strings.TrimSpace(req.Notes) == "" {
		return model.EngagementSummary{}, validationError(errors.New("meeting notes are required"))
	}
	st, err := s.stakeholder(ctx, ownerID, req.StakeholderID)
	if err != nil {
		return model.EngagementSummary{}, err
	}
	return s.assistant.SummarizeMeeting(ctx, st.Name, req.Notes), nil
}

// SuggestStrategy recommends an engagement strategy from the stakeholder
// profile and the most recent engagements.
func (s *InsightService) SuggestStrategy(ctx context.Context, ownerID, stakeholderID string) (string, error) {
	st, err := s.stakeholder(ctx, ownerID, stakeholderID)
	if err != nil {
		return "", err
	}

	recent, err := s.engagements.RecentForStakeholder(ctx, ownerID, stakeholderID, strategyHistorySize)
	if err != nil {
		return "", err
	}

	return s.assistant.SuggestEngagementStrategy(ctx, StrategyInput{
		Name:      st.Name,
		Influence: string(st.Influence),
		Interest:  string(st.Interest),
		Category:  string(st.Category),
		Notes:     st.Notes,
		History:   EngagementHistory(recent),
	}), nil
}

// EngagementHistory renders one line per engagement; empty when none
func EngagementHistory(engagements []*model.Engagement) string {
	lines := make([]string, 0, len(engagements))
	for _, e := range engagements {
		line := fmt.Sprintf("- %s %s \"%s\" (%s)", e.ScheduledDate.Format("2006-01-02"), e.Type, e.Title, e.Status)
		if e.Outcomes != "" {
			line += ": " + e.Outcomes
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// AnalyzeSentiment classifies free text
func (s *InsightService) AnalyzeSentiment(ctx context.Context, text string) (model.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return "", validationError(errors.New("text is required"))
	}
	return s.assistant.AnalyzeSentiment(ctx, text), nil
}

// ExtractActionItems lists the action items found in free text
func (s *InsightService) ExtractActionItems(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", validationError(errors.New("text is required"))
	}
	return s.assistant.ExtractActionItems(ctx, text), nil
}

// GenerateInsights fills missing stakeholder insights and summaries of
// completed engagements for up to limit stakeholders (0 means all). Without
// a completion service it writes deterministic mock text instead.
func (s *InsightService) GenerateInsights(ctx context.Context, ownerID string, limit int) (*InsightReport, error) {
	stakeholders, err := s.stakeholders.Find(ctx, ownerID, model.StakeholderFilter{})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(stakeholders) > limit {
		stakeholders = stakeholders[:limit]
	}

	report := &InsightReport{Mock: !s.assistant.IsAvailable()}
	if report.Mock {
		s.log.Warn("completion service not configured, generating mock insights")
	}

	byID := make(map[string]*model.Stakeholder, len(stakeholders))
	for _, st := range stakeholders {
		byID[st.ID] = st
		if st.AIInsights != "" {
			continue
		}
		if report.Mock {
			st.AIInsights = mockInsight(st)
		} else {
			st.AIInsights = s.assistant.GenerateProfile(ctx, NewProfileInput(st))
		}
		if err := s.stakeholders.Update(ctx, st); err != nil {
			return report, fmt.Errorf("save insights for %s: %w", st.ID, err)
		}
		report.Stakeholders++
		s.log.Info("generated stakeholder insights", zap.String("stakeholder_id", st.ID), zap.Bool("mock", report.Mock))
	}

	pending, err := s.engagements.PendingSummaries(ctx, ownerID)
	if err != nil {
		return report, err
	}
	for _, e := range pending {
		st, ok := byID[e.StakeholderID]
		if !ok {
			continue
		}
		var summary model.EngagementSummary
		if report.Mock {
			summary = mockSummary(e)
		} else {
			summary = s.assistant.SummarizeMeeting(ctx, st.Name, meetingNotes(e, st))
		}
		applySummary(e, summary)
		if err := s.engagements.Update(ctx, e); err != nil {
			return report, fmt.Errorf("save summary for %s: %w", e.ID, err)
		}
		report.Engagements++
		s.log.Info("generated engagement summary", zap.String("engagement_id", e.ID), zap.Bool("mock", report.Mock))
	}

	s.publish(ownerID, EventInsightsGenerated, report)
	return report, nil
}

func (s *InsightService) stakeholder(ctx context.Context, ownerID, id string) (*model.Stakeholder, error) {
	if id == "" {
		return nil, validationError(errors.New("stakeholder is required"))
	}
	st, err := s.stakeholders.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

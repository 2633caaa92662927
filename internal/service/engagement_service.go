package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"stakehub/internal/cache"
	"stakehub/internal/model"
	"stakehub/internal/repository"
)

// EngagementsPerPage is the listing page size
const EngagementsPerPage = 15

// EngagementService handles engagement CRUD and AI summaries
type EngagementService struct {
	activity
	repo         repository.EngagementRepo
	stakeholders repository.StakeholderRepo
	dashboards   cache.DashboardCache
	assistant    *AssistantService
	log          *zap.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(
	repo repository.EngagementRepo,
	stakeholders repository.StakeholderRepo,
	dashboards cache.DashboardCache,
	assistant *AssistantService,
	log *zap.Logger,
) *EngagementService {
	return &EngagementService{
		repo:         repo,
		stakeholders: stakeholders,
		dashboards:   dashboards,
		assistant:    assistant,
		log:          log.Named("engagements"),
	}
}

// Create validates and stores an engagement for one of the owner's stakeholders
func (s *EngagementService) Create(ctx context.Context, ownerID string, e *model.Engagement) (*model.Engagement, error) {
	e.OwnerID = ownerID
	e.ApplyDefaults()
	if err := s.validate(ctx, e); err != nil {
		return nil, err
	}

	// AI fields are only written by GenerateSummary
	e.AISummary, e.AIActionItems, e.AISentimentAnalysis = "", "", ""

	if _, err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create engagement: %w", err)
	}

	invalidateDashboard(ctx, s.dashboards, s.log, ownerID)
	s.publish(ownerID, EventEngagementCreated, e)
	return e, nil
}

// Get returns one engagement or ErrNotFound
func (s *EngagementService) Get(ctx context.Context, ownerID, id string) (*model.Engagement, error) {
	e, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// Update replaces the editable fields and keeps stored AI output
func (s *EngagementService) Update(ctx context.Context, ownerID string, e *model.Engagement) (*model.Engagement, error) {
	existing, err := s.Get(ctx, ownerID, e.ID)
	if err != nil {
		return nil, err
	}

	e.OwnerID = ownerID
	e.CreatedAt = existing.CreatedAt
	e.AISummary = existing.AISummary
	e.AIActionItems = existing.AIActionItems
	e.AISentimentAnalysis = existing.AISentimentAnalysis
	e.ApplyDefaults()
	if err := s.validate(ctx, e); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update engagement: %w", err)
	}

	invalidateDashboard(ctx, s.dashboards, s.log, ownerID)
	s.publish(ownerID, EventEngagementUpdated, e)
	return e, nil
}

// List returns one page of engagements in smart order
func (s *EngagementService) List(ctx context.Context, ownerID string, filter model.EngagementFilter, page int, now time.Time) (model.Page[*model.Engagement], error) {
	engagements, err := s.repo.Find(ctx, ownerID, filter, now)
	if err != nil {
		return model.Page[*model.Engagement]{}, err
	}
	SmartOrder(engagements, now)
	return model.Paginate(engagements, page, EngagementsPerPage), nil
}

// SmartOrder puts engagements scheduled at or after now first, then past
// ones; each group is ascending by date.
func SmartOrder(engagements []*model.Engagement, now time.Time) {
	sort.SliceStable(engagements, func(i, j int) bool {
		fi := !engagements[i].ScheduledDate.Before(now)
		fj := !engagements[j].ScheduledDate.Before(now)
		if fi != fj {
			return fi
		}
		return engagements[i].ScheduledDate.Before(engagements[j].ScheduledDate)
	})
}

// GenerateSummary summarizes meeting notes for an engagement and
// overwrites its stored AI fields with the result.
func (s *EngagementService) GenerateSummary(ctx context.Context, ownerID, id, notes string) (model.EngagementSummary, error) {
	if strings.TrimSpace(notes) == "" {
		return model.EngagementSummary{}, validationError(errors.New("meeting notes are required"))
	}

	e, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return model.EngagementSummary{}, err
	}

	var name string
	st, err := s.stakeholders.GetByID(ctx, ownerID, e.StakeholderID)
	if err != nil {
		return model.EngagementSummary{}, err
	}
	if st != nil {
		name = st.Name
	}

	summary := s.assistant.SummarizeMeeting(ctx, name, notes)
	applySummary(e, summary)

	if err := s.repo.Update(ctx, e); err != nil {
		return model.EngagementSummary{}, fmt.Errorf("save summary: %w", err)
	}

	s.publish(ownerID, EventEngagementSummary, e)
	return summary, nil
}

func applySummary(e *model.Engagement, summary model.EngagementSummary) {
	e.AISummary = summary.Summary
	e.AIActionItems = summary.ActionItems
	e.AISentimentAnalysis = string(summary.Sentiment)
}

func (s *EngagementService) validate(ctx context.Context, e *model.Engagement) error {
	if err := e.Validate(); err != nil {
		return validationError(err)
	}
	st, err := s.stakeholders.GetByID(ctx, e.OwnerID, e.StakeholderID)
	if err != nil {
		return err
	}
	if st == nil {
		return validationError(errors.New("stakeholder not found"))
	}
	return nil
}

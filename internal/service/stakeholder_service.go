package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"stakehub/internal/cache"
	"stakehub/internal/model"
	"stakehub/internal/repository"
)

// StakeholdersPerPage is the listing page size
const StakeholdersPerPage = 12

// StakeholderService handles stakeholder CRUD, listing and ranking
type StakeholderService struct {
	activity
	repo          repository.StakeholderRepo
	engagements   repository.EngagementRepo
	relationships repository.RelationshipRepo
	board         cache.PriorityBoard
	dashboards    cache.DashboardCache
	assistant     *AssistantService
	log           *zap.Logger
}

// NewStakeholderService creates a new stakeholder service
func NewStakeholderService(
	repo repository.StakeholderRepo,
	engagements repository.EngagementRepo,
	relationships repository.RelationshipRepo,
	board cache.PriorityBoard,
	dashboards cache.DashboardCache,
	assistant *AssistantService,
	log *zap.Logger,
) *StakeholderService {
	return &StakeholderService{
		repo:          repo,
		engagements:   engagements,
		relationships: relationships,
		board:         board,
		dashboards:    dashboards,
		assistant:     assistant,
		log:           log.Named("stakeholders"),
	}
}

// Create validates and stores a stakeholder. With generateInsights the
// assistant fills AIInsights before the insert.
func (s *StakeholderService) Create(ctx context.Context, ownerID string, st *model.Stakeholder, generateInsights bool) (*model.Stakeholder, error) {
	st.OwnerID = ownerID
	st.ApplyDefaults()
	if err := st.Validate(); err != nil {
		return nil, validationError(err)
	}

	if generateInsights {
		st.AIInsights = s.assistant.GenerateProfile(ctx, NewProfileInput(st))
	}

	if _, err := s.repo.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("create stakeholder: %w", err)
	}

	s.afterWrite(ctx, st)
	s.publish(ownerID, EventStakeholderCreated, model.NewStakeholderView(st))
	return st, nil
}

// Get returns one stakeholder or ErrNotFound
func (s *StakeholderService) Get(ctx context.Context, ownerID, id string) (*model.Stakeholder, error) {
	st, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

// Update replaces the editable fields. Stored insights are kept unless
// regenerateInsights is set.
func (s *StakeholderService) Update(ctx context.Context, ownerID string, st *model.Stakeholder, regenerateInsights bool) (*model.Stakeholder, error) {
	existing, err := s.Get(ctx, ownerID, st.ID)
	if err != nil {
		return nil, err
	}

	st.OwnerID = ownerID
	st.CreatedAt = existing.CreatedAt
	st.ApplyDefaults()
	if err := st.Validate(); err != nil {
		return nil, validationError(err)
	}

	if regenerateInsights {
		st.AIInsights = s.assistant.GenerateProfile(ctx, NewProfileInput(st))
	} else {
		st.AIInsights = existing.AIInsights
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, fmt.Errorf("update stakeholder: %w", err)
	}

	s.afterWrite(ctx, st)
	s.publish(ownerID, EventStakeholderUpdated, model.NewStakeholderView(st))
	return st, nil
}

// Delete removes a stakeholder with its engagements and relationships
func (s *StakeholderService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}

	if _, err := s.engagements.DeleteByStakeholder(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete engagements: %w", err)
	}
	if _, err := s.relationships.DeleteByStakeholder(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete relationships: %w", err)
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete stakeholder: %w", err)
	}

	if err := s.board.Remove(ctx, ownerID, id); err != nil {
		s.log.Warn("priority board remove failed", zap.String("stakeholder_id", id), zap.Error(err))
	}
	invalidateDashboard(ctx, s.dashboards, s.log, ownerID)
	s.publish(ownerID, EventStakeholderDeleted, map[string]string{"id": id})
	return nil
}

// List returns one page of stakeholders, most recently updated first
func (s *StakeholderService) List(ctx context.Context, ownerID string, filter model.StakeholderFilter, page int) (model.Page[model.StakeholderView], error) {
	stakeholders, err := s.repo.Find(ctx, ownerID, filter)
	if err != nil {
		return model.Page[model.StakeholderView]{}, err
	}

	views := make([]model.StakeholderView, len(stakeholders))
	for i, st := range stakeholders {
		views[i] = model.NewStakeholderView(st)
	}
	return model.Paginate(views, page, StakeholdersPerPage), nil
}

// Options returns the compact list used by dropdowns
func (s *StakeholderService) Options(ctx context.Context, ownerID string) ([]model.StakeholderOption, error) {
	return s.repo.Options(ctx, ownerID)
}

// TopPriority ranks stakeholders by priority score. The Redis board is
// rebuilt when empty; if Redis fails the ranking is computed in memory.
func (s *StakeholderService) TopPriority(ctx context.Context, ownerID string, limit int) ([]model.PriorityEntry, error) {
	if limit < 1 {
		limit = 10
	}

	entries, err := s.boardTop(ctx, ownerID, limit)
	if err != nil {
		s.log.Warn("priority board unavailable, ranking in memory", zap.Error(err))
		return s.rankInMemory(ctx, ownerID, limit)
	}

	options, err := s.repo.Options(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(options))
	for _, o := range options {
		names[o.ID] = o.Name
	}

	ranked := make([]model.PriorityEntry, 0, len(entries))
	for _, e := range entries {
		name, ok := names[e.StakeholderID]
		if !ok {
			continue // stale member
		}
		e.Name = name
		e.Rank = len(ranked) + 1
		ranked = append(ranked, e)
	}
	return ranked, nil
}

func (s *StakeholderService) boardTop(ctx context.Context, ownerID string, limit int) ([]model.PriorityEntry, error) {
	count, err := s.board.Count(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		all, err := s.repo.Find(ctx, ownerID, model.StakeholderFilter{})
		if err != nil {
			return nil, err
		}
		if err := s.board.Rebuild(ctx, ownerID, all); err != nil {
			return nil, err
		}
	}
	return s.board.Top(ctx, ownerID, limit)
}

func (s *StakeholderService) rankInMemory(ctx context.Context, ownerID string, limit int) ([]model.PriorityEntry, error) {
	all, err := s.repo.Find(ctx, ownerID, model.StakeholderFilter{})
	if err != nil {
		return nil, err
	}
	return RankByPriority(all, limit), nil
}

// RankByPriority orders stakeholders by score descending, ties by name
func RankByPriority(stakeholders []*model.Stakeholder, limit int) []model.PriorityEntry {
	sorted := append([]*model.Stakeholder{}, stakeholders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].PriorityScore(), sorted[j].PriorityScore()
		if si != sj {
			return si > sj
		}
		return sorted[i].Name < sorted[j].Name
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]model.PriorityEntry, len(sorted))
	for i, st := range sorted {
		entries[i] = model.PriorityEntry{
			StakeholderID: st.ID,
			Name:          st.Name,
			Score:         st.PriorityScore(),
			Rank:          i + 1,
		}
	}
	return entries
}

func (s *StakeholderService) afterWrite(ctx context.Context, st *model.Stakeholder) {
	if err := s.board.Update(ctx, st.OwnerID, st.ID, st.PriorityScore()); err != nil {
		s.log.Warn("priority board update failed", zap.String("stakeholder_id", st.ID), zap.Error(err))
	}
	invalidateDashboard(ctx, s.dashboards, s.log, st.OwnerID)
}

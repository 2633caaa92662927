package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"stakehub/internal/cache"
	"stakehub/internal/model"
	"stakehub/internal/priority"
	"stakehub/internal/repository"
)

const dashboardListSize = 5

// DashboardService aggregates an owner's records for the overview page
type DashboardService struct {
	stakeholders repository.StakeholderRepo
	engagements  repository.EngagementRepo
	cache        cache.DashboardCache
	log          *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(stakeholders repository.StakeholderRepo, engagements repository.EngagementRepo, c cache.DashboardCache, log *zap.Logger) *DashboardService {
	return &DashboardService{
		stakeholders: stakeholders,
		engagements:  engagements,
		cache:        c,
		log:          log.Named("dashboard"),
	}
}

// Build returns the cached dashboard or computes and caches a fresh one
func (s *DashboardService) Build(ctx context.Context, ownerID string, now time.Time) (*model.Dashboard, error) {
	cached, err := s.cache.Get(ctx, ownerID)
	if err != nil {
		s.log.Warn("dashboard cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	stakeholders, err := s.stakeholders.Find(ctx, ownerID, model.StakeholderFilter{})
	if err != nil {
		return nil, err
	}
	engagements, err := s.engagements.Find(ctx, ownerID, model.EngagementFilter{}, now)
	if err != nil {
		return nil, err
	}

	d := BuildDashboard(stakeholders, engagements, now)
	if err := s.cache.Set(ctx, ownerID, d); err != nil {
		s.log.Warn("dashboard cache write failed", zap.Error(err))
	}
	return d, nil
}

// BuildDashboard computes the aggregates from raw records
func BuildDashboard(stakeholders []*model.Stakeholder, engagements []*model.Engagement, now time.Time) *model.Dashboard {
	d := &model.Dashboard{
		TotalStakeholders:   len(stakeholders),
		TotalEngagements:    len(engagements),
		RecentStakeholders:  []*model.Stakeholder{},
		UpcomingEngagements: []*model.Engagement{},
		Grid:                make([]model.GridPoint, 0, len(stakeholders)),
		GeneratedAt:         now,
	}

	influence := map[string]int{}
	interest := map[string]int{}
	category := map[string]int{}
	for _, st := range stakeholders {
		if st.IsHighPriority() {
			d.HighPriorityCount++
		}
		influence[string(st.Influence)]++
		interest[string(st.Interest)]++
		category[string(st.Category)]++

		d.Grid = append(d.Grid, model.GridPoint{
			ID:             st.ID,
			Name:           st.Name,
			Title:          orDefault(st.Title, "N/A"),
			Organization:   orDefault(st.Organization, "N/A"),
			Influence:      string(st.Influence),
			Interest:       string(st.Interest),
			InfluenceScore: st.Influence.Score(),
			InterestScore:  st.Interest.Score(),
			PriorityScore:  st.PriorityScore(),
		})
	}

	recent := append([]*model.Stakeholder{}, stakeholders...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > dashboardListSize {
		recent = recent[:dashboardListSize]
	}
	d.RecentStakeholders = append(d.RecentStakeholders, recent...)

	types := map[string]int{}
	var upcoming []*model.Engagement
	for _, e := range engagements {
		types[string(e.Type)]++
		switch {
		case e.IsUpcoming(now):
			d.UpcomingCount++
			upcoming = append(upcoming, e)
		case e.IsOverdue(now):
			d.OverdueCount++
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledDate.Before(upcoming[j].ScheduledDate)
	})
	if len(upcoming) > dashboardListSize {
		upcoming = upcoming[:dashboardListSize]
	}
	d.UpcomingEngagements = append(d.UpcomingEngagements, upcoming...)

	levelKeys := make([]string, len(priority.Levels))
	for i, l := range priority.Levels {
		levelKeys[i] = string(l)
	}
	d.InfluenceData = buckets(influence, levelKeys)
	d.InterestData = buckets(interest, levelKeys)

	categoryKeys := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		categoryKeys[i] = string(c)
	}
	d.CategoryData = buckets(category, categoryKeys)

	typeKeys := make([]string, len(model.EngagementTypes))
	for i, t := range model.EngagementTypes {
		typeKeys[i] = string(t)
	}
	d.EngagementTypes = buckets(types, typeKeys)

	return d
}

// buckets emits non-zero counts in the given order, then any keys outside
// it in sorted order.
func buckets(counts map[string]int, order []string) []model.CountBucket {
	out := []model.CountBucket{}
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		seen[k] = true
		if n := counts[k]; n > 0 {
			out = append(out, model.CountBucket{Key: k, Count: n})
		}
	}

	var extra []string
	for k := range counts {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		out = append(out, model.CountBucket{Key: k, Count: counts[k]})
	}
	return out
}

func invalidateDashboard(ctx context.Context, c cache.DashboardCache, log *zap.Logger, ownerID string) {
	if err := c.Invalidate(ctx, ownerID); err != nil {
		log.Warn("dashboard invalidate failed", zap.String("owner_id", ownerID), zap.Error(err))
	}
}

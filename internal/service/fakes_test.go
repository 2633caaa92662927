package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stakehub/internal/model"
	"stakehub/internal/repository"
)

// memStakeholders implements repository.StakeholderRepo in memory
type memStakeholders struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*model.Stakeholder
}

func newMemStakeholders() *memStakeholders {
	return &memStakeholders{rows: make(map[string]*model.Stakeholder)}
}

func (m *memStakeholders) Create(_ context.Context, s *model.Stakeholder) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	s.ID = fmt.Sprintf("s%d", m.seq)
	s.CreatedAt = time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
	s.UpdatedAt = s.CreatedAt
	cp := *s
	m.rows[s.ID] = &cp
	return s.ID, nil
}

func (m *memStakeholders) GetByID(_ context.Context, ownerID, id string) (*model.Stakeholder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok || s.OwnerID != ownerID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memStakeholders) Find(_ context.Context, ownerID string, f model.StakeholderFilter) ([]*model.Stakeholder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Stakeholder{}
	for _, s := range m.rows {
		if s.OwnerID != ownerID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.HighPriorityOnly && !s.IsHighPriority() {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memStakeholders) Options(ctx context.Context, ownerID string) ([]model.StakeholderOption, error) {
	all, _ := m.Find(ctx, ownerID, model.StakeholderFilter{})
	out := make([]model.StakeholderOption, len(all))
	for i, s := range all {
		out[i] = model.StakeholderOption{ID: s.ID, Name: s.Name, Title: s.Title, Organization: s.Organization}
	}
	return out, nil
}

func (m *memStakeholders) Update(_ context.Context, s *model.Stakeholder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memStakeholders) Delete(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[id]; ok && s.OwnerID == ownerID {
		delete(m.rows, id)
	}
	return nil
}

// memEngagements implements repository.EngagementRepo in memory
type memEngagements struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*model.Engagement
}

func newMemEngagements() *memEngagements {
	return &memEngagements{rows: make(map[string]*model.Engagement)}
}

func (m *memEngagements) Create(_ context.Context, e *model.Engagement) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e.ID = fmt.Sprintf("e%d", m.seq)
	cp := *e
	m.rows[e.ID] = &cp
	return e.ID, nil
}

func (m *memEngagements) GetByID(_ context.Context, ownerID, id string) (*model.Engagement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok || e.OwnerID != ownerID {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *memEngagements) all(ownerID string, keep func(*model.Engagement) bool) []*model.Engagement {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Engagement{}
	for _, e := range m.rows {
		if e.OwnerID == ownerID && keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

func (m *memEngagements) Find(_ context.Context, ownerID string, f model.EngagementFilter, now time.Time) ([]*model.Engagement, error) {
	return m.all(ownerID, func(e *model.Engagement) bool {
		switch {
		case f.Status != "" && e.Status != f.Status:
			return false
		case f.StakeholderID != "" && e.StakeholderID != f.StakeholderID:
			return false
		case f.Upcoming && !e.IsUpcoming(now):
			return false
		case f.Overdue && !e.IsOverdue(now):
			return false
		}
		return true
	}), nil
}

func (m *memEngagements) RecentForStakeholder(_ context.Context, ownerID, stakeholderID string, limit int) ([]*model.Engagement, error) {
	out := m.all(ownerID, func(e *model.Engagement) bool { return e.StakeholderID == stakeholderID })
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.After(out[j].ScheduledDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memEngagements) PendingSummaries(_ context.Context, ownerID string) ([]*model.Engagement, error) {
	return m.all(ownerID, func(e *model.Engagement) bool {
		return e.Status == model.StatusCompleted && e.AISummary == ""
	}), nil
}

func (m *memEngagements) Update(_ context.Context, e *model.Engagement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memEngagements) DeleteByStakeholder(_ context.Context, ownerID, stakeholderID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, e := range m.rows {
		if e.OwnerID == ownerID && e.StakeholderID == stakeholderID {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

// memRelationships implements repository.RelationshipRepo in memory
type memRelationships struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*model.Relationship
}

func newMemRelationships() *memRelationships {
	return &memRelationships{rows: make(map[string]*model.Relationship)}
}

func (m *memRelationships) Create(_ context.Context, rel *model.Relationship) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.FromID == rel.FromID && r.ToID == rel.ToID && r.Type == rel.Type {
			return "", repository.ErrDuplicate
		}
	}
	m.seq++
	rel.ID = fmt.Sprintf("r%d", m.seq)
	cp := *rel
	m.rows[rel.ID] = &cp
	return rel.ID, nil
}

func (m *memRelationships) GetByID(_ context.Context, ownerID, id string) (*model.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.OwnerID != ownerID {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memRelationships) ForStakeholder(_ context.Context, ownerID, stakeholderID string) ([]*model.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Relationship{}
	for _, r := range m.rows {
		if r.OwnerID == ownerID && (r.FromID == stakeholderID || r.ToID == stakeholderID) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRelationships) Delete(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rows[id]; ok && r.OwnerID == ownerID {
		delete(m.rows, id)
	}
	return nil
}

func (m *memRelationships) DeleteByStakeholder(_ context.Context, ownerID, stakeholderID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, r := range m.rows {
		if r.OwnerID == ownerID && (r.FromID == stakeholderID || r.ToID == stakeholderID) {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

// memBoard implements cache.PriorityBoard in memory
type memBoard struct {
	mu       sync.Mutex
	scores   map[string]map[string]int
	err      error
	rebuilds int
}

func newMemBoard() *memBoard {
	return &memBoard{scores: make(map[string]map[string]int)}
}

func (b *memBoard) owner(ownerID string) map[string]int {
	if b.scores[ownerID] == nil {
		b.scores[ownerID] = make(map[string]int)
	}
	return b.scores[ownerID]
}

func (b *memBoard) Update(_ context.Context, ownerID, id string, score int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.owner(ownerID)[id] = score
	return nil
}

func (b *memBoard) Remove(_ context.Context, ownerID, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	delete(b.owner(ownerID), id)
	return nil
}

func (b *memBoard) Top(_ context.Context, ownerID string, limit int) ([]model.PriorityEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	var out []model.PriorityEntry
	for id, score := range b.owner(ownerID) {
		out = append(out, model.PriorityEntry{StakeholderID: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].StakeholderID > out[j].StakeholderID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func (b *memBoard) Count(_ context.Context, ownerID string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return 0, b.err
	}
	return int64(len(b.owner(ownerID))), nil
}

func (b *memBoard) Rebuild(_ context.Context, ownerID string, stakeholders []*model.Stakeholder) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.rebuilds++
	b.scores[ownerID] = make(map[string]int)
	for _, s := range stakeholders {
		b.scores[ownerID][s.ID] = s.PriorityScore()
	}
	return nil
}

// memDashboards implements cache.DashboardCache in memory
type memDashboards struct {
	mu          sync.Mutex
	entries     map[string]*model.Dashboard
	invalidated int
}

func newMemDashboards() *memDashboards {
	return &memDashboards{entries: make(map[string]*model.Dashboard)}
}

func (c *memDashboards) Get(_ context.Context, ownerID string) (*model.Dashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[ownerID], nil
}

func (c *memDashboards) Set(_ context.Context, ownerID string, d *model.Dashboard) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ownerID] = d
	return nil
}

func (c *memDashboards) Invalidate(_ context.Context, ownerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	delete(c.entries, ownerID)
	return nil
}

// recordingBroadcaster implements Broadcaster
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingBroadcaster) BroadcastToOwner(ownerID string, msgType string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ownerID+":"+msgType)
}

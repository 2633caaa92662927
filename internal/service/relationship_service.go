package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"stakehub/internal/model"
	"stakehub/internal/repository"
)

// RelationshipService links stakeholders of the same owner
type RelationshipService struct {
	activity
	repo         repository.RelationshipRepo
	stakeholders repository.StakeholderRepo
	log          *zap.Logger
}

// NewRelationshipService creates a new relationship service
func NewRelationshipService(repo repository.RelationshipRepo, stakeholders repository.StakeholderRepo, log *zap.Logger) *RelationshipService {
	return &RelationshipService{
		repo:         repo,
		stakeholders: stakeholders,
		log:          log.Named("relationships"),
	}
}

// Create stores a relationship. Both ends must belong to the owner and
// (from, to, type) must be new.
func (s *RelationshipService) Create(ctx context.Context, ownerID string, rel *model.Relationship) (*model.RelationshipView, error) {
	rel.OwnerID = ownerID
	rel.ApplyDefaults()
	if err := rel.Validate(); err != nil {
		return nil, validationError(err)
	}

	from, err := s.stakeholders.GetByID(ctx, ownerID, rel.FromID)
	if err != nil {
		return nil, err
	}
	to, err := s.stakeholders.GetByID(ctx, ownerID, rel.ToID)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, validationError(errors.New("stakeholder not found"))
	}

	if _, err := s.repo.Create(ctx, rel); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s %s %s", ErrDuplicate, from.Name, rel.Type.Label(), to.Name)
		}
		return nil, fmt.Errorf("create relationship: %w", err)
	}

	view := &model.RelationshipView{
		Relationship: rel,
		TypeLabel:    rel.Type.Label(),
		FromName:     from.Name,
		ToName:       to.Name,
	}
	s.publish(ownerID, EventRelationshipCreated, view)
	return view, nil
}

// ForStakeholder lists relationships where the stakeholder is either end
func (s *RelationshipService) ForStakeholder(ctx context.Context, ownerID, stakeholderID string) ([]model.RelationshipView, error) {
	st, err := s.stakeholders.GetByID(ctx, ownerID, stakeholderID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}

	rels, err := s.repo.ForStakeholder(ctx, ownerID, stakeholderID)
	if err != nil {
		return nil, err
	}

	options, err := s.stakeholders.Options(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(options))
	for _, o := range options {
		names[o.ID] = o.Name
	}

	views := make([]model.RelationshipView, len(rels))
	for i, rel := range rels {
		views[i] = model.RelationshipView{
			Relationship: rel,
			TypeLabel:    rel.Type.Label(),
			FromName:     names[rel.FromID],
			ToName:       names[rel.ToID],
		}
	}
	return views, nil
}

// Delete removes one relationship
func (s *RelationshipService) Delete(ctx context.Context, ownerID, id string) error {
	rel, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if rel == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete relationship: %w", err)
	}
	s.publish(ownerID, EventRelationshipDeleted, map[string]string{"id": id})
	return nil
}

package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stakehub/internal/model"
)

// EngagementRepo handles MongoDB operations for engagements
type EngagementRepo interface {
	Create(ctx context.Context, e *model.Engagement) (string, error)
	GetByID(ctx context.Context, ownerID, id string) (*model.Engagement, error)
	Find(ctx context.Context, ownerID string, filter model.EngagementFilter, now time.Time) ([]*model.Engagement, error)
	RecentForStakeholder(ctx context.Context, ownerID, stakeholderID string, limit int) ([]*model.Engagement, error)
	PendingSummaries(ctx context.Context, ownerID string) ([]*model.Engagement, error)
	Update(ctx context.Context, e *model.Engagement) error
	DeleteByStakeholder(ctx context.Context, ownerID, stakeholderID string) (int64, error)
}

type engagementRepo struct {
	collection *mongo.Collection
}

// NewEngagementRepo creates a new engagement repository
func NewEngagementRepo(db *mongo.Database) EngagementRepo {
	return &engagementRepo{
		collection: db.Collection(EngagementsCollection),
	}
}

func (r *engagementRepo) Create(ctx context.Context, e *model.Engagement) (string, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID().Hex()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

func (r *engagementRepo) GetByID(ctx context.Context, ownerID, id string) (*model.Engagement, error) {
	var e model.Engagement
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "ownerId": ownerID}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Find returns matches ordered by scheduled date ascending
func (r *engagementRepo) Find(ctx context.Context, ownerID string, filter model.EngagementFilter, now time.Time) ([]*model.Engagement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})
	return r.find(ctx, engagementQuery(ownerID, filter, now), opts)
}

// RecentForStakeholder returns the latest engagements first
func (r *engagementRepo) RecentForStakeholder(ctx context.Context, ownerID, stakeholderID string, limit int) ([]*model.Engagement, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduledDate", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"ownerId": ownerID, "stakeholderId": stakeholderID}, opts)
}

// PendingSummaries returns completed engagements without an AI summary
func (r *engagementRepo) PendingSummaries(ctx context.Context, ownerID string) ([]*model.Engagement, error) {
	q := bson.M{
		"ownerId":   ownerID,
		"status":    model.StatusCompleted,
		"aiSummary": "",
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})
	return r.find(ctx, q, opts)
}

func (r *engagementRepo) Update(ctx context.Context, e *model.Engagement) error {
	e.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": e.ID, "ownerId": e.OwnerID}, e)
	return err
}

func (r *engagementRepo) DeleteByStakeholder(ctx context.Context, ownerID, stakeholderID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"ownerId": ownerID, "stakeholderId": stakeholderID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *engagementRepo) find(ctx context.Context, q bson.M, opts *options.FindOptions) ([]*model.Engagement, error) {
	cursor, err := r.collection.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	engagements := []*model.Engagement{}
	if err := cursor.All(ctx, &engagements); err != nil {
		return nil, err
	}
	return engagements, nil
}

// engagementQuery translates a listing filter into a Mongo query. Upcoming
// and overdue both imply status planned; when both are set nothing matches.
func engagementQuery(ownerID string, f model.EngagementFilter, now time.Time) bson.M {
	q := bson.M{"ownerId": ownerID}

	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.StakeholderID != "" {
		q["stakeholderId"] = f.StakeholderID
	}
	if f.Type != "" {
		q["type"] = f.Type
	}

	date := bson.M{}
	if f.Upcoming {
		date["$gte"] = now
	}
	if f.Overdue {
		date["$lt"] = now
	}
	if len(date) > 0 {
		q["scheduledDate"] = date
		if f.Status != "" && f.Status != model.StatusPlanned {
			// conflicting status: keep both constraints so Mongo returns nothing
			q["$and"] = bson.A{bson.M{"status": f.Status}, bson.M{"status": model.StatusPlanned}}
		} else {
			q["status"] = model.StatusPlanned
		}
	}
	return q
}

package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stakehub/internal/model"
	"stakehub/internal/priority"
)

// StakeholderRepo handles MongoDB operations for stakeholders
type StakeholderRepo interface {
	Create(ctx context.Context, s *model.Stakeholder) (string, error)
	GetByID(ctx context.Context, ownerID, id string) (*model.Stakeholder, error)
	Find(ctx context.Context, ownerID string, filter model.StakeholderFilter) ([]*model.Stakeholder, error)
	Options(ctx context.Context, ownerID string) ([]model.StakeholderOption, error)
	Update(ctx context.Context, s *model.Stakeholder) error
	Delete(ctx context.Context, ownerID, id string) error
}

type stakeholderRepo struct {
	collection *mongo.Collection
}

// NewStakeholderRepo creates a new stakeholder repository
func NewStakeholderRepo(db *mongo.Database) StakeholderRepo {
	return &stakeholderRepo{
		collection: db.Collection(StakeholdersCollection),
	}
}

func (r *stakeholderRepo) Create(ctx context.Context, s *model.Stakeholder) (string, error) {
	now := time.Now().UTC()
	s.ID = primitive.NewObjectID().Hex()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		return "", err
	}
	return s.ID, nil
}

func (r *stakeholderRepo) GetByID(ctx context.Context, ownerID, id string) (*model.Stakeholder, error) {
	var s model.Stakeholder
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "ownerId": ownerID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stakeholderRepo) Find(ctx context.Context, ownerID string, filter model.StakeholderFilter) ([]*model.Stakeholder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, stakeholderQuery(ownerID, filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stakeholders := []*model.Stakeholder{}
	if err := cursor.All(ctx, &stakeholders); err != nil {
		return nil, err
	}
	return stakeholders, nil
}

func (r *stakeholderRepo) Options(ctx context.Context, ownerID string) ([]model.StakeholderOption, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"name": 1, "title": 1, "organization": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := []model.StakeholderOption{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *stakeholderRepo) Update(ctx context.Context, s *model.Stakeholder) error {
	s.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": s.ID, "ownerId": s.OwnerID}, s)
	return err
}

func (r *stakeholderRepo) Delete(ctx context.Context, ownerID, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	return err
}

// stakeholderQuery translates a listing filter into a Mongo query
func stakeholderQuery(ownerID string, f model.StakeholderFilter) bson.M {
	q := bson.M{"ownerId": ownerID}

	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"organization": re},
			bson.M{"title": re},
			bson.M{"department": re},
		}
	}
	if f.Influence != "" {
		q["influence"] = f.Influence
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.HighPriorityOnly {
		// Levels outside priority.Levels score as medium and can never
		// reach the threshold, so enumerating known pairs is complete.
		pairs := bson.A{}
		for _, influence := range priority.Levels {
			for _, interest := range priority.Levels {
				if priority.IsHighPriority(influence, interest) {
					pairs = append(pairs, bson.M{"influence": influence, "interest": interest})
				}
			}
		}
		if _, hasSearch := q["$or"]; hasSearch {
			q["$and"] = bson.A{bson.M{"$or": q["$or"]}, bson.M{"$or": pairs}}
			delete(q, "$or")
		} else {
			q["$or"] = pairs
		}
	}
	return q
}

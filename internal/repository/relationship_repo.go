package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stakehub/internal/model"
)

// ErrDuplicate is returned when a unique index rejects a write
var ErrDuplicate = errors.New("duplicate key")

// RelationshipRepo handles MongoDB operations for stakeholder relationships
type RelationshipRepo interface {
	Create(ctx context.Context, rel *model.Relationship) (string, error)
	GetByID(ctx context.Context, ownerID, id string) (*model.Relationship, error)
	ForStakeholder(ctx context.Context, ownerID, stakeholderID string) ([]*model.Relationship, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteByStakeholder(ctx context.Context, ownerID, stakeholderID string) (int64, error)
}

type relationshipRepo struct {
	collection *mongo.Collection
}

// NewRelationshipRepo creates a new relationship repository
func NewRelationshipRepo(db *mongo.Database) RelationshipRepo {
	return &relationshipRepo{
		collection: db.Collection(RelationshipsCollection),
	}
}

func (r *relationshipRepo) Create(ctx context.Context, rel *model.Relationship) (string, error) {
	rel.ID = primitive.NewObjectID().Hex()
	rel.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, rel); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicate
		}
		return "", err
	}
	return rel.ID, nil
}

func (r *relationshipRepo) GetByID(ctx context.Context, ownerID, id string) (*model.Relationship, error) {
	var rel model.Relationship
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "ownerId": ownerID}).Decode(&rel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// ForStakeholder returns relationships in either direction
func (r *relationshipRepo) ForStakeholder(ctx context.Context, ownerID, stakeholderID string) ([]*model.Relationship, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, touching(ownerID, stakeholderID), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rels := []*model.Relationship{}
	if err := cursor.All(ctx, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *relationshipRepo) Delete(ctx context.Context, ownerID, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	return err
}

func (r *relationshipRepo) DeleteByStakeholder(ctx context.Context, ownerID, stakeholderID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, touching(ownerID, stakeholderID))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func touching(ownerID, stakeholderID string) bson.M {
	return bson.M{
		"ownerId": ownerID,
		"$or": bson.A{
			bson.M{"fromStakeholderId": stakeholderID},
			bson.M{"toStakeholderId": stakeholderID},
		},
	}
}

package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	StakeholdersCollection  = "stakeholders"
	EngagementsCollection   = "engagements"
	RelationshipsCollection = "relationships"
)

// EnsureIndexes creates the indexes the repositories query by. Safe to run
// on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		StakeholdersCollection: {
			{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "updatedAt", Value: -1}}},
			{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "name", Value: 1}}},
		},
		EngagementsCollection: {
			{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "scheduledDate", Value: 1}}},
			{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "stakeholderId", Value: 1}, {Key: "scheduledDate", Value: -1}}},
		},
		RelationshipsCollection: {
			{
				Keys: bson.D{
					{Key: "fromStakeholderId", Value: 1},
					{Key: "toStakeholderId", Value: 1},
					{Key: "relationshipType", Value: 1},
				},
				Options: options.Index().SetUnique(true).SetName("uniq_from_to_type"),
			},
			{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "toStakeholderId", Value: 1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

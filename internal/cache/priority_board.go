package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"stakehub/internal/model"
)

// PriorityBoard keeps each owner's stakeholders ranked by priority score
// in a Redis ZSET.
type PriorityBoard interface {
	Update(ctx context.Context, ownerID, stakeholderID string, score int) error
	Remove(ctx context.Context, ownerID, stakeholderID string) error
	Top(ctx context.Context, ownerID string, limit int) ([]model.PriorityEntry, error)
	Count(ctx context.Context, ownerID string) (int64, error)
	Rebuild(ctx context.Context, ownerID string, stakeholders []*model.Stakeholder) error
}

type priorityBoard struct {
	client *redis.Client
}

// NewPriorityBoard creates a new priority board
func NewPriorityBoard(client *redis.Client) PriorityBoard {
	return &priorityBoard{
		client: client,
	}
}

func (c *priorityBoard) key(ownerID string) string {
	return fmt.Sprintf("owner:%s:priority", ownerID)
}

func (c *priorityBoard) Update(ctx context.Context, ownerID, stakeholderID string, score int) error {
	return c.client.ZAdd(ctx, c.key(ownerID), redis.Z{
		Score:  float64(score),
		Member: stakeholderID,
	}).Err()
}

func (c *priorityBoard) Remove(ctx context.Context, ownerID, stakeholderID string) error {
	return c.client.ZRem(ctx, c.key(ownerID), stakeholderID).Err()
}

// Top returns the highest scores first. Names are left for the caller.
func (c *priorityBoard) Top(ctx context.Context, ownerID string, limit int) ([]model.PriorityEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(ownerID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.PriorityEntry, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		entries[i] = model.PriorityEntry{
			StakeholderID: member,
			Score:         int(z.Score),
			Rank:          i + 1,
		}
	}
	return entries, nil
}

func (c *priorityBoard) Count(ctx context.Context, ownerID string) (int64, error) {
	return c.client.ZCard(ctx, c.key(ownerID)).Result()
}

// Rebuild replaces the board atomically from the given stakeholders
func (c *priorityBoard) Rebuild(ctx context.Context, ownerID string, stakeholders []*model.Stakeholder) error {
	key := c.key(ownerID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(stakeholders) == 0 {
			return nil
		}
		members := make([]redis.Z, len(stakeholders))
		for i, s := range stakeholders {
			members[i] = redis.Z{Score: float64(s.PriorityScore()), Member: s.ID}
		}
		pipe.ZAdd(ctx, key, members...)
		return nil
	})
	return err
}

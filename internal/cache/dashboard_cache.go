package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stakehub/internal/model"
)

// DashboardTTL bounds how stale a cached dashboard may be
const DashboardTTL = 5 * time.Minute

// DashboardCache handles Redis operations for per-owner dashboards
type DashboardCache interface {
	Get(ctx context.Context, ownerID string) (*model.Dashboard, error)
	Set(ctx context.Context, ownerID string, d *model.Dashboard) error
	Invalidate(ctx context.Context, ownerID string) error
}

type dashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache creates a new dashboard cache
func NewDashboardCache(client *redis.Client) DashboardCache {
	return &dashboardCache{
		client: client,
		ttl:    DashboardTTL,
	}
}

func (c *dashboardCache) key(ownerID string) string {
	return fmt.Sprintf("owner:%s:dashboard", ownerID)
}

func (c *dashboardCache) Get(ctx context.Context, ownerID string) (*model.Dashboard, error) {
	data, err := c.client.Get(ctx, c.key(ownerID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d model.Dashboard
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *dashboardCache) Set(ctx context.Context, ownerID string, d *model.Dashboard) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(ownerID), data, c.ttl).Err()
}

func (c *dashboardCache) Invalidate(ctx context.Context, ownerID string) error {
	return c.client.Del(ctx, c.key(ownerID)).Err()
}

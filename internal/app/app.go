package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"stakehub/internal/cache"
	"stakehub/internal/config"
	"stakehub/internal/llm"
	"stakehub/internal/repository"
	"stakehub/internal/service"
)

// connectTimeout bounds how long startup waits for Mongo and Redis
const connectTimeout = time.Minute

// App holds the connected stores and the services built on them. Both
// the HTTP server and the insights command start from here.
type App struct {
	Mongo *mongo.Client
	Redis *redis.Client

	StakeholderRepo  repository.StakeholderRepo
	EngagementRepo   repository.EngagementRepo
	RelationshipRepo repository.RelationshipRepo
	Dashboards       cache.DashboardCache
	PriorityBoard    cache.PriorityBoard

	Auth          *service.AuthService
	Assistant     *service.AssistantService
	Stakeholders  *service.StakeholderService
	Engagements   *service.EngagementService
	Relationships *service.RelationshipService
	Insights      *service.InsightService
	Dashboard     *service.DashboardService

	log *zap.Logger
}

// New connects to Mongo and Redis, retrying with exponential backoff,
// ensures indexes and wires every service.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{log: log}

	mongoClient, err := connectMongo(ctx, cfg.Mongo, log)
	if err != nil {
		return nil, err
	}
	a.Mongo = mongoClient

	rdb, err := connectRedis(ctx, cfg.Redis, log)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}
	a.Redis = rdb

	db := mongoClient.Database(cfg.Mongo.Database)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		a.Close(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	completer, err := llm.NewGeminiClient(ctx, cfg.AI, log)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}

	// Initialize repositories
	a.StakeholderRepo = repository.NewStakeholderRepo(db)
	a.EngagementRepo = repository.NewEngagementRepo(db)
	a.RelationshipRepo = repository.NewRelationshipRepo(db)

	// Initialize caches
	a.Dashboards = cache.NewDashboardCache(rdb)
	a.PriorityBoard = cache.NewPriorityBoard(rdb)

	// Initialize services
	a.Auth = service.NewAuthService(cfg.Auth)
	a.Assistant = service.NewAssistantService(completer, log)
	a.Stakeholders = service.NewStakeholderService(a.StakeholderRepo, a.EngagementRepo, a.RelationshipRepo, a.PriorityBoard, a.Dashboards, a.Assistant, log)
	a.Engagements = service.NewEngagementService(a.EngagementRepo, a.StakeholderRepo, a.Dashboards, a.Assistant, log)
	a.Relationships = service.NewRelationshipService(a.RelationshipRepo, a.StakeholderRepo, log)
	a.Insights = service.NewInsightService(a.StakeholderRepo, a.EngagementRepo, a.Assistant, log)
	a.Dashboard = service.NewDashboardService(a.StakeholderRepo, a.EngagementRepo, a.Dashboards, log)

	return a, nil
}

// SetBroadcaster routes every service's activity events to b
func (a *App) SetBroadcaster(b service.Broadcaster) {
	a.Stakeholders.SetBroadcaster(b)
	a.Engagements.SetBroadcaster(b)
	a.Relationships.SetBroadcaster(b)
	a.Insights.SetBroadcaster(b)
}

// Close disconnects from the stores
func (a *App) Close(ctx context.Context) {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.log.Warn("redis close failed", zap.Error(err))
		}
	}
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			a.log.Warn("mongo disconnect failed", zap.Error(err))
		}
	}
}

func connectMongo(ctx context.Context, cfg config.MongoConfig, log *zap.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pingCtx, nil)
	}
	if err := retry(ctx, "mongo", ping, log); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("connected to MongoDB", zap.String("database", cfg.Database))
	return client, nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})

	ping := func() error {
		return rdb.Ping(ctx).Err()
	}
	if err := retry(ctx, "redis", ping, log); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info("connected to Redis", zap.String("addr", cfg.Addr))
	return rdb, nil
}

func retry(ctx context.Context, name string, op backoff.Operation, log *zap.Logger) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = connectTimeout

	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
		log.Warn("store not ready, retrying",
			zap.String("store", name),
			zap.Duration("wait", wait),
			zap.Error(err))
	})
}

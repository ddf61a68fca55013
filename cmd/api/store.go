package main

import (
	"context"
	"fmt"

	"go-jobportal-backend/config"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/repository/memory"
	mongorepo "go-jobportal-backend/internal/repository/mongo"
	"go-jobportal-backend/internal/repository/postgres"
	"go-jobportal-backend/internal/usecase"
	"go-jobportal-backend/pkg/database"
	"go-jobportal-backend/pkg/logger"

	"go.uber.org/zap"
)

type stores struct {
	users domain.UserRepository
	jobs  domain.JobRepository
	apps  domain.ApplicationRepository
	ping  usecase.Pinger
	close func()
}

// openStore connects the configured backend and prepares its schema.
func openStore(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := database.NewMongoConnection(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return &stores{
			users: mongorepo.NewUserRepository(db),
			jobs:  mongorepo.NewJobRepository(db),
			apps:  mongorepo.NewApplicationRepository(db),
			ping:  func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					logger.Log.Warn("mongo disconnect", zap.Error(err))
				}
			},
		}, nil

	case config.StorePostgres:
		if cfg.RunMigrations {
			if err := postgres.RunMigrations(cfg.DBUrl); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		return &stores{
			users: postgres.NewUserRepository(pool),
			jobs:  postgres.NewJobRepository(pool),
			apps:  postgres.NewApplicationRepository(pool),
			ping:  pool.Ping,
			close: pool.Close,
		}, nil

	case config.StoreMemory:
		logger.Log.Warn("using in-memory store; data is lost on restart")
		return &stores{
			users: memory.NewUserRepository(),
			jobs:  memory.NewJobRepository(),
			apps:  memory.NewApplicationRepository(),
			close: func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stamp-rally/internal/infra/db"
	"stamp-rally/internal/infra/kvstore"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStore,
		func(s kvstore.Store) shared.KVStore { return s },
	),
)

// NewStore opens the backend named by STORE_DRIVER and closes it on shutdown.
func NewStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (kvstore.Store, error) {
	if err := kvstore.ValidateDriver(cfg.Store.Driver); err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Store.Driver) {
	case kvstore.DriverPostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return nil, err
		}
		if cfg.Store.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := db.Migrate(ctx, pool); err != nil {
				cleanup()
				return nil, err
			}
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		return kvstore.NewPostgresStore(pool, logger), nil

	case kvstore.DriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := kvstore.ConnectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})
		return kvstore.NewRedisStore(client, logger), nil

	default:
		store, err := kvstore.NewMemoryStore(cfg.Store.MemorySize)
		if err != nil {
			return nil, fmt.Errorf("open memory store: %w", err)
		}
		logger.Warn("Using the in-memory store; guest data is lost on restart")
		return store, nil
	}
}

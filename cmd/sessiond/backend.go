package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/mongo"
	"github.com/dmitrymomot/sessionkit/pkg/pg"
	"github.com/dmitrymomot/sessionkit/pkg/redis"
	"github.com/dmitrymomot/sessionkit/pkg/session"
	"github.com/dmitrymomot/sessionkit/pkg/session/mongostore"
	"github.com/dmitrymomot/sessionkit/pkg/session/pgstore"
	"github.com/dmitrymomot/sessionkit/pkg/session/redisstore"
)

var errUnknownStore = errors.New("sessiond.unknown_store")

// backend is the selected session store plus its probes and teardown.
// A nil store means the manager's in-memory default.
type backend struct {
	name   string
	store  session.Store[profile]
	checks []func(context.Context) error
	close  func()
}

func openBackend(ctx context.Context, kind string, log *slog.Logger) (*backend, error) {
	switch kind {
	case "", "memory":
		return &backend{name: "memory", close: func() {}}, nil

	case "redis":
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &backend{
			name:   kind,
			store:  redisstore.New(client, redisstore.WithPrefix[profile](cfg.KeyPrefix)),
			checks: []func(context.Context) error{redis.Healthcheck(client)},
			close:  func() { _ = client.Close() },
		}, nil

	case "postgres":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, pgstore.Migrations, pgstore.MigrationsDir, cfg, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &backend{
			name:   kind,
			store:  pgstore.New[profile](pool),
			checks: []func(context.Context) error{pg.Healthcheck(pool)},
			close:  pool.Close,
		}, nil

	case "mongo":
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := mongo.Connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		store := mongostore.New[profile](mongo.Collection(client, cfg))
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &backend{
			name:   kind,
			store:  store,
			checks: []func(context.Context) error{mongo.Healthcheck(client)},
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error("mongo disconnect failed", logger.Error(err))
				}
			},
		}, nil
	}

	return nil, errors.Join(errUnknownStore, fmt.Errorf("%q, want memory, redis, postgres or mongo", kind))
}

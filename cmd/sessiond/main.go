// Command sessiond is a small HTTP service that exercises the session
// lifecycle against a configurable backend.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/requestid"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`
	Store    string `env:"SESSION_STORE" envDefault:"memory"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("sessiond stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var app appConfig
	if err := config.Load(&app); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, "sessiond"),
		logger.WithLevelName(app.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var sessCfg session.Config
	if err := config.Load(&sessCfg); err != nil {
		return err
	}
	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}

	be, err := openBackend(ctx, app.Store, log)
	if err != nil {
		return err
	}
	defer be.close()

	opts := []session.Option[profile]{session.WithLogger[profile](log)}
	if be.store != nil {
		opts = append(opts, session.WithStore(be.store))
	}
	mgr, err := session.New[profile](sessCfg, opts...)
	if err != nil {
		return err
	}
	defer mgr.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if be.store != nil && sessCfg.CleanupInterval > 0 {
		go cleanupLoop(ctx, mgr, sessCfg.CleanupInterval, log)
	}

	log.InfoContext(ctx, "session backend ready", logger.Store(be.name))

	srv := httpserver.NewFromConfig(srvCfg,
		httpserver.WithLogger(log),
		httpserver.OnStop(func(context.Context) { cancel() }),
	)
	return srv.Run(ctx, newRouter(mgr, log, be.checks...))
}

// cleanupLoop purges expired records for backends without native expiry.
func cleanupLoop(ctx context.Context, mgr *session.Manager[profile], every time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := mgr.Cleanup(ctx)
			if err != nil {
				log.ErrorContext(ctx, "session cleanup failed", logger.Error(err))
				continue
			}
			if n > 0 {
				log.DebugContext(ctx, "expired sessions removed", slog.Int64("count", n))
			}
		}
	}
}

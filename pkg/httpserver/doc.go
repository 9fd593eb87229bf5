// Package httpserver runs the session demo service with graceful shutdown.
//
// Run blocks until the context is cancelled or the process receives SIGINT
// or SIGTERM, then drains in-flight requests within the shutdown timeout.
// OnStop callbacks run after the drain, which is where session managers and
// store connections are closed.
//
//	srv := httpserver.NewFromConfig(cfg,
//	    httpserver.WithLogger(log),
//	    httpserver.OnStop(func(context.Context) { _ = manager.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// HealthCheckHandler builds liveness and readiness endpoints from plain
// func(context.Context) error checks such as redis.Healthcheck.
package httpserver

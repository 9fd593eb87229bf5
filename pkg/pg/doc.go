// Package pg bootstraps the PostgreSQL pool used by the pgstore session backend.
//
// Connect builds a pgxpool.Pool from Config and retries until the server
// answers. Migrate runs goose migrations from any fs.FS, which lets each store
// embed its own schema:
//
//	pool, err := pg.Connect(ctx, cfg, log)
//	if err != nil {
//	    return err
//	}
//	if err := pg.Migrate(ctx, pool, pgstore.Migrations, pgstore.MigrationsDir, cfg, log); err != nil {
//	    return err
//	}
//
// Healthcheck returns a closure suitable for readiness probes, and
// IsNotFoundError classifies pgx.ErrNoRows.
package pg

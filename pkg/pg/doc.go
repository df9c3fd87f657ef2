// Package pg wraps the pgx/v5 pool with the pieces a service needs at
// startup: Connect with retries, goose migrations from an embedded file
// system, a readiness probe, and helpers to classify PostgreSQL errors.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrations, "migrations", log); err != nil {
//		return err
//	}
package pg

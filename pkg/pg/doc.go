// Package pg connects to PostgreSQL through a pgx/v5 pool and applies goose
// migrations shipped inside an fs.FS.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, settings.Migrations, "migrations", cfg, log); err != nil {
//		return err
//	}
//
// Healthcheck plugs the pool into a readiness probe. IsNotFoundError and
// IsDuplicateKeyError classify pgx errors.
package pg

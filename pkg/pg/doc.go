// Package pg connects to PostgreSQL through a pgx pool and applies goose
// migrations embedded in the binary.
//
//	pool, err := pg.Connect(ctx, cfg)
//	defer pool.Close()
//	if _, err := pg.Migrate(ctx, pool, migrations.FS, log); err != nil { ... }
//
// Error helpers classify driver errors with github.com/jackc/pgerrcode so
// repositories can map unique violations onto domain conflicts.
package pg

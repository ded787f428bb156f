package pg

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrator runs goose migrations from an fs.FS against a pgx pool.
type Migrator struct {
	provider *goose.Provider
	log      *slog.Logger
	close    func() error
}

// NewMigrator expects migrations at the root of fsys.
func NewMigrator(pool *pgxpool.Pool, fsys fs.FS, log *slog.Logger) (*Migrator, error) {
	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToApplyMigrations, err)
	}
	return &Migrator{provider: provider, log: log, close: db.Close}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.log.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("file", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	r, err := m.provider.Down(ctx)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	m.log.InfoContext(ctx, "migration rolled back",
		slog.Int64("version", r.Source.Version),
		slog.String("file", r.Source.Path),
	)
	return nil
}

// Status logs the state of every known migration.
func (m *Migrator) Status(ctx context.Context) error {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return err
	}
	for _, s := range statuses {
		m.log.InfoContext(ctx, "migration",
			slog.Int64("version", s.Source.Version),
			slog.String("file", s.Source.Path),
			slog.String("state", string(s.State)),
			slog.Time("applied_at", s.AppliedAt),
		)
	}
	return nil
}

func (m *Migrator) Close() error {
	return m.close()
}

// Migrate is a shortcut for NewMigrator followed by Up.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, log *slog.Logger) error {
	m, err := NewMigrator(pool, fsys, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", slog.Any("error", err))
		}
	}()
	return m.Up(ctx)
}

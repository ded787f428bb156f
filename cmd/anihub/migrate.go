package main

import (
	"context"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/anihub/pkg/config"
	"github.com/dmitrymomot/anihub/pkg/pg"
	authpg "github.com/dmitrymomot/anihub/svc/auth/postgres"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage PostgreSQL schema migrations",
		Long: `Apply, roll back, or inspect the account schema migrations.

Only the postgres storage driver uses migrations. MongoDB indexes are
created on serve.`,
	}
	cmd.AddCommand(
		newMigrateStepCmd("up", "Apply all pending migrations", (*pg.Migrator).Up),
		newMigrateStepCmd("down", "Roll back the most recent migration", (*pg.Migrator).Down),
		newMigrateStepCmd("status", "Print the status of every migration", (*pg.Migrator).Status),
	)
	return cmd
}

func newMigrateStepCmd(use, short string, step func(*pg.Migrator, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, use, step)
		},
	}
}

func runMigrate(cmd *cobra.Command, name string, step func(*pg.Migrator, context.Context) error) error {
	ctx := cmd.Context()

	log, err := newLogger()
	if err != nil {
		return err
	}
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	cmd.Println("Connecting to database...")
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	m, err := pg.NewMigrator(pool, authpg.Migrations(), log)
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "create migrator").Wrap(err)
	}
	defer func() { _ = m.Close() }()

	if err := step(m, ctx); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "migrate "+name).Wrap(err)
	}

	cmd.Printf("migrate %s completed\n", name)
	return nil
}

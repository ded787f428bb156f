package main

import (
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/anihub/pkg/config"
	"github.com/dmitrymomot/anihub/pkg/logger"
)

// NewPruneTokensCmd creates the prune-tokens subcommand.
func NewPruneTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune-tokens",
		Short: "Delete expired email verification tokens",
		Long: `Delete verification tokens whose expiry has passed.

Expired tokens are never accepted, so pruning only reclaims space. Redis
token storage expires keys on its own and needs no pruning.`,
		Args: cobra.NoArgs,
		RunE: runPruneTokens,
	}
}

func runPruneTokens(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	log, err := newLogger()
	if err != nil {
		return err
	}
	var cfg storageConfig
	if err := config.Load(&cfg); err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	// Migrations are the migrate command's job.
	cfg.AutoMigrate = false

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(ctx); err != nil {
			log.ErrorContext(ctx, "failed to close storage", logger.Error(err))
		}
	}()

	pruner, ok := store.pruner()
	if !ok {
		cmd.Println("token storage expires tokens on its own, nothing to prune")
		return nil
	}

	n, err := pruner.DeleteExpired(ctx, time.Now())
	if err != nil {
		return oops.Code("PRUNE_FAILED").Wrap(err)
	}
	cmd.Printf("deleted %d expired verification tokens\n", n)
	return nil
}

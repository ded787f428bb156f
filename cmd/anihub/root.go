package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/anihub/pkg/config"
	"github.com/dmitrymomot/anihub/pkg/logger"
)

// NewRootCmd creates the root command for the AniHub CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anihub",
		Short: "AniHub account service",
		Long: `AniHub account service: password and Google sign-in,
email verification and session cookies for the AniHub web client.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewPruneTokensCmd())

	return cmd
}

// newLogger builds the process logger from the environment.
func newLogger() (*slog.Logger, error) {
	var cfg logger.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	opts := append(logger.FromConfig(cfg), logger.WithContextExtractors(logger.RequestIDExtractor()))
	return logger.New(opts...), nil
}

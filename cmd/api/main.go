package main

import (
	"context"
	"fmt"
	"os"

	"crudhub/internal/app/bootstrap"
	"crudhub/internal/app/cli"

	"github.com/spf13/cobra"
)

// API process entrypoint.
// Data flow:
// 1) Resolve config from flags, environment and an optional YAML file.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Serve HTTP until SIGINT/SIGTERM, then drain.
func main() {
	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "crudhub-api",
		Short:         "Serve the crudhub REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	cli.RegisterFlags(root)

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API (default)",
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the postgres schema and exit",
		RunE:  runMigrate,
	})
	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.Load(cmd)
	if err != nil {
		return err
	}
	logger := cli.NewLogger(cfg, os.Stderr)

	app, err := bootstrap.BuildAPI(cfg, logger)
	if err != nil {
		return fmt.Errorf("bootstrap api: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("api close failed",
				"event", "api_close_failed",
				"module", "cmd/api",
				"layer", "platform",
				"error", err.Error(),
			)
		}
	}()
	return app.Run(cmd.Context())
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.Load(cmd)
	if err != nil {
		return err
	}
	return bootstrap.Migrate(cmd.Context(), cfg, cli.NewLogger(cfg, os.Stderr))
}

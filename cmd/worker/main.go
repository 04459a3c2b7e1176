package main

import (
	"context"
	"fmt"
	"os"

	"crudhub/internal/app/bootstrap"
	"crudhub/internal/app/cli"

	"github.com/spf13/cobra"
)

// Worker process entrypoint.
// Data flow:
// 1) Resolve config.
// 2) Build app wiring against postgres.
// 3) Relay the product outbox and run the lifecycle audit consumer until
// SIGINT/SIGTERM.
func main() {
	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	root := &cobra.Command{
		Use:           "crudhub-worker",
		Short:         "Relay product outbox events",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cli.RegisterFlags(root)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.Load(cmd)
	if err != nil {
		return err
	}
	logger := cli.NewLogger(cfg, os.Stderr)

	app, err := bootstrap.BuildWorker(cfg, logger)
	if err != nil {
		return fmt.Errorf("bootstrap worker: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("worker close failed",
				"event", "worker_close_failed",
				"module", "cmd/worker",
				"layer", "platform",
				"error", err.Error(),
			)
		}
	}()
	return app.Run(cmd.Context())
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/sales-analytics/cmd/root"
	"fjacquet/sales-analytics/cmd/run"
	"fjacquet/sales-analytics/cmd/status"
	"fjacquet/sales-analytics/cmd/validate"
	"fjacquet/sales-analytics/internal/config"
	"fjacquet/sales-analytics/internal/ledgererror"
	"fjacquet/sales-analytics/internal/logging"
)

func init() {
	// 1. Load .env before anything reads the environment
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}

	// 2. Logger for everything that happens before the configuration is loaded
	root.Log = config.ConfigureLogging()

	// 3. Without a subcommand the root command runs the pipeline
	root.Cmd.RunE = run.Run

	// 4. Add all subcommands
	root.Cmd.AddCommand(run.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(status.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		reportError(err)
		stop()
		os.Exit(1)
	}
}

// reportError prints a one-line explanation of a fatal error.
func reportError(err error) {
	var configErr *ledgererror.ConfigError
	switch {
	case errors.As(err, &configErr):
		root.Log.Error("Configuration error", logging.F(logging.FieldError, err.Error()))
	case ledgererror.IsFatal(err):
		root.Log.Error("Sales analytics run failed", logging.F(logging.FieldError, err.Error()))
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

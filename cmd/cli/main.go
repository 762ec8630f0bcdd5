package main

import (
	"context"
	"fmt"
	"os"

	"useradmin-cli/internal/client/cli"
	"useradmin-cli/internal/client/config"
	"useradmin-cli/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logging.NewZerologLogger(os.Stderr, cfg.LogLevel)

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error("failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}

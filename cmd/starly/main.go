package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/starly/internal/buildinfo"
	"github.com/dmitrijs2005/starly/internal/cli"
	"github.com/dmitrijs2005/starly/internal/config"
	"github.com/dmitrijs2005/starly/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	ctx := context.Background()

	app, st, err := cli.Bootstrap(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

	if err := st.Close(); err != nil {
		logger.Error(ctx, "closing store", "error", err)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/noah-isme/campus-records/internal/app"
	"github.com/noah-isme/campus-records/internal/cli"
	"github.com/noah-isme/campus-records/pkg/config"
	"github.com/noah-isme/campus-records/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// stdout belongs to the menu.
	logr, err := logger.NewWithOutput(cfg, "stderr")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()
	records, err := app.New(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init records", "error", err)
	}

	if err := cli.NewSession(records, os.Stdin, os.Stdout, logr).Run(ctx); err != nil {
		logr.Sugar().Errorw("session ended with error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	_ "github.com/noah-isme/campus-records/api/swagger"
	"github.com/noah-isme/campus-records/internal/app"
	"github.com/noah-isme/campus-records/internal/handler"
	"github.com/noah-isme/campus-records/pkg/config"
	"github.com/noah-isme/campus-records/pkg/logger"
)

// @title Campus Records API
// @version 0.1.0
// @description Students, courses, enrollments, grades and transcripts
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	records, err := app.New(context.Background(), cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init records", "error", err)
	}

	r := handler.NewRouter(cfg, records, logr)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

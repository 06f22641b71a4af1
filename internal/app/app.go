// Package app wires repositories and services into one record store per process.
package app

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/repository"
	"github.com/noah-isme/campus-records/internal/service"
	"github.com/noah-isme/campus-records/pkg/config"
	"github.com/noah-isme/campus-records/pkg/export"
	"github.com/noah-isme/campus-records/pkg/storage"
)

// App holds the services sharing a single in-memory record store.
type App struct {
	Students    *service.StudentService
	Courses     *service.CourseService
	Enrollments *service.EnrollmentService
	Transcripts *service.TranscriptService
	Statistics  *service.StatisticsService
	Exports     *service.ExportService
	Metrics     *service.MetricsService
	Cache       *service.CacheService
}

// New builds the service graph from configuration and optionally seeds it
// with sample data.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := validator.New()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	cacheRepo := repository.NewCacheRepository(cfg.Cache.TTL, cfg.Cache.CleanupInterval, logger)
	cache := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logger, cfg.Cache.Enabled)

	students := repository.NewStudentRepository()
	courses := repository.NewCourseRepository()
	enrollments := repository.NewEnrollmentRepository()

	files := storage.NewLocalStorage(cfg.Export.Dir)

	a := &App{
		Students:    service.NewStudentService(students, cache, validate, logger),
		Courses:     service.NewCourseService(courses, cache, validate, logger),
		Enrollments: service.NewEnrollmentService(enrollments, students, courses, cache, metrics, validate, logger),
		Transcripts: service.NewTranscriptService(students, courses, enrollments, cache, metrics, logger),
		Statistics:  service.NewStatisticsService(enrollments, students, courses, cache),
		Metrics:     metrics,
		Cache:       cache,
	}
	a.Exports = service.NewExportService(a.Transcripts, export.NewCSVExporter(), export.NewPDFExporter(), files, cfg.Export.Workers, logger)

	if cfg.Records.SeedSampleData {
		if err := service.SeedSampleData(ctx, a.Students, a.Courses, a.Enrollments); err != nil {
			return nil, fmt.Errorf("seed sample data: %w", err)
		}
		logger.Info("sample data loaded",
			zap.Int("students", a.Students.Count(ctx)),
			zap.Int("courses", a.Courses.Count(ctx)),
			zap.Int("enrollments", a.Enrollments.Count(ctx)))
	}

	return a, nil
}

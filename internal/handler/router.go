package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/app"
	"github.com/noah-isme/campus-records/internal/middleware"
	"github.com/noah-isme/campus-records/pkg/config"
	"github.com/noah-isme/campus-records/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-records/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-records/pkg/middleware/requestid"
)

// NewRouter builds the gin engine serving the records API.
func NewRouter(cfg *config.Config, a *app.App, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(a.Metrics))

	metricsHandler := NewMetricsHandler(a.Metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if a.Metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	RegisterRoutes(r.Group(cfg.APIPrefix), a)
	return r
}

// RegisterRoutes mounts the records endpoints on the given group.
func RegisterRoutes(api *gin.RouterGroup, a *app.App) {
	students := NewStudentHandler(a.Students, a.Enrollments)
	courses := NewCourseHandler(a.Courses)
	enrollments := NewEnrollmentHandler(a.Enrollments)
	transcripts := NewTranscriptHandler(a.Transcripts, a.Exports)
	exports := NewExportHandler(a.Students, a.Exports)
	statistics := NewStatisticsHandler(a.Statistics)
	metrics := NewMetricsHandler(a.Metrics)

	api.GET("/students", students.List)
	api.POST("/students", students.Create)
	api.GET("/students/:id", students.Get)
	api.GET("/students/:id/enrollments", students.Enrollments)
	api.GET("/students/:id/transcript", transcripts.Get)
	api.GET("/students/:id/transcript/export", transcripts.Export)
	api.POST("/exports/transcripts", exports.SaveAll)

	api.GET("/courses", courses.List)
	api.POST("/courses", courses.Create)
	api.GET("/courses/:code", courses.Get)
	api.DELETE("/courses/:code", courses.Delete)

	api.GET("/enrollments", enrollments.List)
	api.POST("/enrollments", enrollments.Create)
	api.PUT("/enrollments/:studentId/:courseCode/:term/grade", enrollments.RecordGrade)

	api.GET("/statistics", statistics.Summary)
	api.GET("/statistics/terms", statistics.Terms)
	api.GET("/statistics/courses", statistics.Courses)
	api.GET("/statistics/metrics", metrics.Snapshot)
}

package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/campus-records/internal/models"
)

// MetricsSnapshot is a point-in-time view of the counters kept by MetricsService.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	EnrollmentsCreated       uint64    `json:"enrollments_created"`
	EnrollmentsReplaced      uint64    `json:"enrollments_replaced"`
	GradesRecorded           uint64    `json:"grades_recorded"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// MetricsService encapsulates Prometheus instrumentation for the records API
// and the ledger operations behind it.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	enrollments     *prometheus.CounterVec
	grades          *prometheus.CounterVec
	transcriptGPA   prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheHitRatio   prometheus.Gauge

	requestCount         uint64
	requestDurationTotal uint64
	enrollCreated        uint64
	enrollReplaced       uint64
	gradeCount           uint64
	cacheHitCount        uint64
	cacheMissCount       uint64
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	enrollments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "records_enrollments_total",
		Help: "Enrollments written to the ledger",
	}, []string{"term", "outcome"})

	grades := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "records_grades_recorded_total",
		Help: "Grades recorded against enrollments",
	}, []string{"grade"})

	transcriptGPA := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "records_transcript_gpa",
		Help:    "GPA of built transcripts",
		Buckets: prometheus.LinearBuckets(0, 1, 10),
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, enrollments, grades, transcriptGPA, cacheHits, cacheMisses, cacheHitRatio, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		enrollments:     enrollments,
		grades:          grades,
		transcriptGPA:   transcriptGPA,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		cacheHitRatio:   cacheHitRatio,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordEnrollment counts a ledger write; replaced marks an overwrite of an existing key.
func (m *MetricsService) RecordEnrollment(term models.Term, replaced bool) {
	if m == nil {
		return
	}
	outcome := "created"
	if replaced {
		outcome = "replaced"
		atomic.AddUint64(&m.enrollReplaced, 1)
	} else {
		atomic.AddUint64(&m.enrollCreated, 1)
	}
	m.enrollments.WithLabelValues(string(term), outcome).Inc()
}

// RecordGrade counts a recorded grade.
func (m *MetricsService) RecordGrade(grade models.Grade) {
	if m == nil {
		return
	}
	m.grades.WithLabelValues(string(grade)).Inc()
	atomic.AddUint64(&m.gradeCount, 1)
}

// ObserveTranscript records the GPA of a freshly built transcript.
func (m *MetricsService) ObserveTranscript(gpa float64) {
	if m == nil {
		return
	}
	m.transcriptGPA.Observe(gpa)
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// Snapshot returns the aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var cacheRatio float64
	if lookups := hits + misses; lookups > 0 {
		cacheRatio = float64(hits) / float64(lookups)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		EnrollmentsCreated:       atomic.LoadUint64(&m.enrollCreated),
		EnrollmentsReplaced:      atomic.LoadUint64(&m.enrollReplaced),
		GradesRecorded:           atomic.LoadUint64(&m.gradeCount),
		CacheHits:                hits,
		CacheMisses:              misses,
		CacheHitRatio:            cacheRatio,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}

package service

import (
	"context"

	"github.com/noah-isme/campus-records/internal/models"
)

type enrollmentSnapshotter interface {
	List() []models.Enrollment
	Count() int
}

type counter interface {
	Count() int
}

// StatisticsService aggregates the ledger into enrollment counts.
type StatisticsService struct {
	enrollments enrollmentSnapshotter
	students    counter
	courses     counter
	cache       *CacheService
}

// NewStatisticsService constructs StatisticsService.
func NewStatisticsService(enrollments enrollmentSnapshotter, students, courses counter, cache *CacheService) *StatisticsService {
	return &StatisticsService{enrollments: enrollments, students: students, courses: courses, cache: cache}
}

// TermCounts returns the number of enrollments per term. Every defined term
// is present, including those with no enrollments.
func (s *StatisticsService) TermCounts(ctx context.Context) map[models.Term]int {
	generation := s.cache.Generation()
	var counts map[models.Term]int
	if s.cache.Get(ctx, cacheKeyStatsTerms, &counts) {
		return counts
	}
	counts = termCounts(s.enrollments.List())
	s.cache.SetIfCurrent(ctx, cacheKeyStatsTerms, counts, generation)
	return counts
}

// CourseCounts returns the number of enrollments per course code. Courses
// without enrollments are absent.
func (s *StatisticsService) CourseCounts(ctx context.Context) map[string]int {
	generation := s.cache.Generation()
	var counts map[string]int
	if s.cache.Get(ctx, cacheKeyStatsCourses, &counts) {
		return counts
	}
	counts = courseCounts(s.enrollments.List())
	s.cache.SetIfCurrent(ctx, cacheKeyStatsCourses, counts, generation)
	return counts
}

// Summary returns campus-wide totals together with the term and course counts.
func (s *StatisticsService) Summary(ctx context.Context) models.CampusStatistics {
	generation := s.cache.Generation()
	var summary models.CampusStatistics
	if s.cache.Get(ctx, cacheKeyStatsSummary, &summary) {
		return summary
	}
	snapshot := s.enrollments.List()
	summary = models.CampusStatistics{
		TotalStudents:    s.students.Count(),
		TotalCourses:     s.courses.Count(),
		TotalEnrollments: len(snapshot),
		ByTerm:           termCounts(snapshot),
		ByCourse:         courseCounts(snapshot),
	}
	s.cache.SetIfCurrent(ctx, cacheKeyStatsSummary, summary, generation)
	return summary
}

func termCounts(enrollments []models.Enrollment) map[models.Term]int {
	counts := make(map[models.Term]int, len(models.Terms()))
	for _, term := range models.Terms() {
		counts[term] = 0
	}
	for _, e := range enrollments {
		counts[e.Term]++
	}
	return counts
}

func courseCounts(enrollments []models.Enrollment) map[string]int {
	counts := make(map[string]int)
	for _, e := range enrollments {
		counts[e.CourseCode]++
	}
	return counts
}

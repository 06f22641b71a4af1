package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/models"
	appErrors "github.com/noah-isme/campus-records/pkg/errors"
)

type enrollmentLister interface {
	ListByStudent(studentID string) []models.Enrollment
}

// TranscriptService assembles transcripts and credit-weighted GPAs.
type TranscriptService struct {
	students    studentReader
	courses     courseReader
	enrollments enrollmentLister
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewTranscriptService constructs TranscriptService.
func NewTranscriptService(students studentReader, courses courseReader, enrollments enrollmentLister, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *TranscriptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{students: students, courses: courses, enrollments: enrollments, cache: cache, metrics: metrics, logger: logger}
}

// Build returns the student's transcript. Enrollments whose course no longer
// exists and enrollments still UNGRADED are left out of both the lines and
// the GPA.
func (s *TranscriptService) Build(ctx context.Context, studentID string) (*models.Transcript, error) {
	generation := s.cache.Generation()
	student, ok := s.students.FindByID(studentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrStudentNotFound, "student "+studentID+" not found")
	}

	var cached models.Transcript
	if s.cache.Get(ctx, transcriptCacheKey(studentID), &cached) {
		return &cached, nil
	}

	transcript := &models.Transcript{Student: student, Lines: make([]models.TranscriptLine, 0)}
	for _, enrollment := range s.enrollments.ListByStudent(studentID) {
		points, graded := enrollment.Grade.Points()
		if !graded {
			continue
		}
		course, ok := s.courses.FindByID(enrollment.CourseCode)
		if !ok {
			s.logger.Debug("transcript skips missing course",
				zap.String("student_id", studentID),
				zap.String("course_code", enrollment.CourseCode))
			continue
		}
		transcript.Lines = append(transcript.Lines, models.TranscriptLine{
			CourseCode: course.Code,
			CourseName: course.Name,
			Term:       enrollment.Term,
			Credits:    course.Credits,
			Grade:      enrollment.Grade,
			Points:     points,
		})
		transcript.TotalPoints += points * float64(course.Credits)
		transcript.TotalCredits += course.Credits
	}
	transcript.GPA = GPA(transcript.TotalPoints, transcript.TotalCredits)

	s.metrics.ObserveTranscript(transcript.GPA)
	s.cache.SetIfCurrent(ctx, transcriptCacheKey(studentID), transcript, generation)
	return transcript, nil
}

// GPA divides weighted grade points by credit-hours, returning exactly 0 when
// no credits were earned.
func GPA(totalPoints float64, totalCredits int) float64 {
	if totalCredits <= 0 {
		return 0.0
	}
	return totalPoints / float64(totalCredits)
}

package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/models"
	appErrors "github.com/noah-isme/campus-records/pkg/errors"
)

type enrollmentRepository interface {
	Put(enrollment models.Enrollment) bool
	FindByKey(key models.EnrollmentKey) (models.Enrollment, bool)
	UpdateGrade(key models.EnrollmentKey, grade models.Grade) (models.Enrollment, bool)
	List() []models.Enrollment
	ListByStudent(studentID string) []models.Enrollment
	Count() int
}

type studentReader interface {
	FindByID(id string) (models.Student, bool)
}

type courseReader interface {
	FindByID(code string) (models.Course, bool)
}

// EnrollRequest describes enrollment creation request.
type EnrollRequest struct {
	StudentID  string      `json:"student_id" validate:"required"`
	CourseCode string      `json:"course_code" validate:"required"`
	Term       models.Term `json:"term" validate:"required,oneof=FALL WINTER"`
}

// RecordGradeRequest describes a grade assignment for an enrollment key.
type RecordGradeRequest struct {
	StudentID  string       `json:"student_id" validate:"required"`
	CourseCode string       `json:"course_code" validate:"required"`
	Term       models.Term  `json:"term" validate:"required,oneof=FALL WINTER"`
	Grade      models.Grade `json:"grade" validate:"required,oneof=A B C D F"`
}

func (r RecordGradeRequest) key() models.EnrollmentKey {
	return models.EnrollmentKey{StudentID: r.StudentID, CourseCode: r.CourseCode, Term: r.Term}
}

// EnrollmentService orchestrates the enrollment ledger.
type EnrollmentService struct {
	repo      enrollmentRepository
	students  studentReader
	courses   courseReader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, students studentReader, courses courseReader, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:      repo,
		students:  students,
		courses:   courses,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns a snapshot of the ledger in insertion order.
func (s *EnrollmentService) List(ctx context.Context) []models.Enrollment {
	return s.repo.List()
}

// ListByStudent returns the student's enrollments; empty when there are none.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID string) []models.Enrollment {
	return s.repo.ListByStudent(studentID)
}

// Enroll registers a student to a course for a term. Student and course must
// exist at call time. An existing enrollment at the same key is replaced and
// its grade reset to UNGRADED.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	if _, ok := s.students.FindByID(req.StudentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrStudentNotFound, "student "+req.StudentID+" not found")
	}
	if _, ok := s.courses.FindByID(req.CourseCode); !ok {
		return nil, appErrors.Clone(appErrors.ErrCourseNotFound, "course "+req.CourseCode+" not found")
	}

	enrollment := models.Enrollment{
		StudentID:  req.StudentID,
		CourseCode: req.CourseCode,
		Term:       req.Term,
		Grade:      models.GradeUngraded,
		EnrolledAt: s.now().UTC(),
	}
	replaced := s.repo.Put(enrollment)

	s.cache.Invalidate(ctx, transcriptCacheKey(req.StudentID), cacheKeyAllStats)
	s.metrics.RecordEnrollment(req.Term, replaced)
	s.logger.Debug("enrollment stored",
		zap.String("student_id", req.StudentID),
		zap.String("course_code", req.CourseCode),
		zap.String("term", string(req.Term)),
		zap.Bool("replaced", replaced))
	return &enrollment, nil
}

// RecordGrade overwrites the grade of an existing enrollment. Re-grading is
// allowed any number of times; a missing key is reported and never created.
func (s *EnrollmentService) RecordGrade(ctx context.Context, req RecordGradeRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid grade payload")
	}
	enrollment, ok := s.repo.UpdateGrade(req.key(), req.Grade)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrEnrollmentNotFound, "no enrollment for "+req.StudentID+" in "+req.CourseCode+" ("+req.Term.DisplayName()+")")
	}

	s.cache.Invalidate(ctx, transcriptCacheKey(req.StudentID), cacheKeyAllStats)
	s.metrics.RecordGrade(req.Grade)
	s.logger.Debug("grade recorded",
		zap.String("student_id", req.StudentID),
		zap.String("course_code", req.CourseCode),
		zap.String("term", string(req.Term)),
		zap.String("grade", string(req.Grade)))
	return &enrollment, nil
}

// Count returns the ledger size.
func (s *EnrollmentService) Count(ctx context.Context) int {
	return s.repo.Count()
}

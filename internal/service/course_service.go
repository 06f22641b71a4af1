package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/models"
	appErrors "github.com/noah-isme/campus-records/pkg/errors"
)

type courseRepository interface {
	Put(course models.Course)
	FindByID(code string) (models.Course, bool)
	List() []models.Course
	Delete(code string) bool
	Count() int
}

// CreateCourseRequest holds payload for adding courses.
type CreateCourseRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
	Capacity    int    `json:"capacity"`
}

// CourseService handles course use-cases.
type CourseService struct {
	repo      courseRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Add inserts or replaces a course.
func (s *CourseService) Add(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}
	course := models.Course{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Credits:     req.Credits,
		Capacity:    req.Capacity,
	}
	s.repo.Put(course)
	// credits feed every transcript that lists the course
	s.cache.Invalidate(ctx, cacheKeyAllTranscripts, cacheKeyAllStats)
	s.logger.Debug("course stored", zap.String("course_code", course.Code))
	return &course, nil
}

// Exists reports whether a course with the code is stored.
func (s *CourseService) Exists(ctx context.Context, code string) bool {
	_, ok := s.repo.FindByID(code)
	return ok
}

// Get returns a course by code.
func (s *CourseService) Get(ctx context.Context, code string) (*models.Course, error) {
	course, ok := s.repo.FindByID(code)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrCourseNotFound, "course "+code+" not found")
	}
	return &course, nil
}

// List returns all courses in insertion order.
func (s *CourseService) List(ctx context.Context) []models.Course {
	return s.repo.List()
}

// Search returns courses whose code or name contains query, ignoring case.
func (s *CourseService) Search(ctx context.Context, query string) []models.Course {
	needle := strings.ToLower(strings.TrimSpace(query))
	matches := make([]models.Course, 0)
	for _, course := range s.repo.List() {
		if strings.Contains(strings.ToLower(course.Code), needle) || strings.Contains(strings.ToLower(course.Name), needle) {
			matches = append(matches, course)
		}
	}
	return matches
}

// Remove deletes a course. Enrollments that reference it stay in the ledger
// and are skipped by transcripts from then on.
func (s *CourseService) Remove(ctx context.Context, code string) error {
	if !s.repo.Delete(code) {
		return appErrors.Clone(appErrors.ErrCourseNotFound, "course "+code+" not found")
	}
	s.cache.Invalidate(ctx, cacheKeyAllTranscripts, cacheKeyAllStats)
	s.logger.Info("course removed", zap.String("course_code", code))
	return nil
}

// Count returns the number of stored courses.
func (s *CourseService) Count(ctx context.Context) int {
	return s.repo.Count()
}

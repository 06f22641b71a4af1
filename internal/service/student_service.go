package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/models"
	appErrors "github.com/noah-isme/campus-records/pkg/errors"
)

type studentRepository interface {
	Put(student models.Student)
	FindByID(id string) (models.Student, bool)
	List() []models.Student
	Count() int
}

// CreateStudentRequest holds payload for adding students. Only the ID is
// required; names and emails are stored as given.
type CreateStudentRequest struct {
	ID       string `json:"id" validate:"required"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Program  string `json:"program"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// Add inserts or replaces a student. The enrollment date is stamped on first
// insert and carried over when the same ID is added again.
func (s *StudentService) Add(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	student := models.Student{
		ID:         req.ID,
		FullName:   req.FullName,
		Email:      req.Email,
		Program:    req.Program,
		EnrolledAt: s.now().UTC(),
	}
	existing, replaced := s.repo.FindByID(req.ID)
	if replaced {
		student.EnrolledAt = existing.EnrolledAt
	}
	s.repo.Put(student)
	s.cache.Invalidate(ctx, transcriptCacheKey(student.ID), cacheKeyAllStats)
	s.logger.Debug("student stored", zap.String("student_id", student.ID), zap.Bool("replaced", replaced))
	return &student, nil
}

// Exists reports whether a student with the ID is stored.
func (s *StudentService) Exists(ctx context.Context, id string) bool {
	_, ok := s.repo.FindByID(id)
	return ok
}

// Get returns a student by ID.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, ok := s.repo.FindByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrStudentNotFound, "student "+id+" not found")
	}
	return &student, nil
}

// List returns all students in insertion order.
func (s *StudentService) List(ctx context.Context) []models.Student {
	return s.repo.List()
}

// Search returns students whose name or ID contains query, ignoring case.
func (s *StudentService) Search(ctx context.Context, query string) []models.Student {
	needle := strings.ToLower(strings.TrimSpace(query))
	matches := make([]models.Student, 0)
	for _, student := range s.repo.List() {
		if strings.Contains(strings.ToLower(student.FullName), needle) || strings.Contains(strings.ToLower(student.ID), needle) {
			matches = append(matches, student)
		}
	}
	return matches
}

// Count returns the number of stored students.
func (s *StudentService) Count(ctx context.Context) int {
	return s.repo.Count()
}

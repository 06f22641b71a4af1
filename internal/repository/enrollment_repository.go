package repository

import "github.com/noah-isme/campus-records/internal/models"

// EnrollmentRepository is the enrollment ledger, keyed by the
// (student, course, term) composite key.
type EnrollmentRepository struct {
	store *orderedStore[models.EnrollmentKey, models.Enrollment]
}

// NewEnrollmentRepository constructs an empty ledger.
func NewEnrollmentRepository() *EnrollmentRepository {
	return &EnrollmentRepository{store: newOrderedStore[models.EnrollmentKey, models.Enrollment]()}
}

// Put stores the enrollment at its key, replacing any prior record there.
// It reports whether a record was replaced.
func (r *EnrollmentRepository) Put(enrollment models.Enrollment) bool {
	_, replaced := r.store.put(enrollment.Key(), enrollment)
	return replaced
}

// FindByKey returns the enrollment stored at key.
func (r *EnrollmentRepository) FindByKey(key models.EnrollmentKey) (models.Enrollment, bool) {
	return r.store.get(key)
}

// UpdateGrade overwrites the grade of an existing enrollment. It never
// creates a record and reports false when key is absent.
func (r *EnrollmentRepository) UpdateGrade(key models.EnrollmentKey, grade models.Grade) (models.Enrollment, bool) {
	return r.store.update(key, func(e *models.Enrollment) {
		e.Grade = grade
	})
}

// List returns a snapshot of every enrollment in insertion order.
func (r *EnrollmentRepository) List() []models.Enrollment {
	return r.store.values(nil)
}

// ListByStudent returns the student's enrollments in insertion order.
func (r *EnrollmentRepository) ListByStudent(studentID string) []models.Enrollment {
	return r.store.values(func(e models.Enrollment) bool {
		return e.StudentID == studentID
	})
}

// Count returns the ledger size.
func (r *EnrollmentRepository) Count() int {
	return r.store.size()
}

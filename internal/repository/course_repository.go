package repository

import "github.com/noah-isme/campus-records/internal/models"

// CourseRepository keeps course records in memory, keyed by code.
type CourseRepository struct {
	store *orderedStore[string, models.Course]
}

// NewCourseRepository constructs an empty repository.
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{store: newOrderedStore[string, models.Course]()}
}

// Put inserts or replaces the course with the same code.
func (r *CourseRepository) Put(course models.Course) {
	r.store.put(course.Code, course)
}

// FindByID returns the course with the given code.
func (r *CourseRepository) FindByID(code string) (models.Course, bool) {
	return r.store.get(code)
}

// List returns all courses in insertion order.
func (r *CourseRepository) List() []models.Course {
	return r.store.values(nil)
}

// Delete removes a course. Enrollments referencing it are left untouched.
func (r *CourseRepository) Delete(code string) bool {
	return r.store.remove(code)
}

// Count returns the number of stored courses.
func (r *CourseRepository) Count() int {
	return r.store.size()
}

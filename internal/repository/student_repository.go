package repository

import "github.com/noah-isme/campus-records/internal/models"

// StudentRepository keeps student records in memory, keyed by ID.
type StudentRepository struct {
	store *orderedStore[string, models.Student]
}

// NewStudentRepository constructs an empty repository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{store: newOrderedStore[string, models.Student]()}
}

// Put inserts or replaces the student with the same ID.
func (r *StudentRepository) Put(student models.Student) {
	r.store.put(student.ID, student)
}

// FindByID returns the student with the given ID.
func (r *StudentRepository) FindByID(id string) (models.Student, bool) {
	return r.store.get(id)
}

// List returns all students in insertion order.
func (r *StudentRepository) List() []models.Student {
	return r.store.values(nil)
}

// Count returns the number of stored students.
func (r *StudentRepository) Count() int {
	return r.store.size()
}

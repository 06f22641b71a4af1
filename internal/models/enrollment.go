package models

import "time"

// EnrollmentKey identifies an enrollment. Two enrollments are the same record
// iff all three fields are equal.
type EnrollmentKey struct {
	StudentID  string `json:"student_id"`
	CourseCode string `json:"course_code"`
	Term       Term   `json:"term"`
}

// Enrollment captures a student's registration to a course within a term.
type Enrollment struct {
	StudentID  string    `json:"student_id"`
	CourseCode string    `json:"course_code"`
	Term       Term      `json:"term"`
	Grade      Grade     `json:"grade"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// Key returns the composite key of the enrollment.
func (e Enrollment) Key() EnrollmentKey {
	return EnrollmentKey{StudentID: e.StudentID, CourseCode: e.CourseCode, Term: e.Term}
}

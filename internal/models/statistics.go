package models

// CampusStatistics summarises the record store.
type CampusStatistics struct {
	TotalStudents    int            `json:"total_students"`
	TotalCourses     int            `json:"total_courses"`
	TotalEnrollments int            `json:"total_enrollments"`
	ByTerm           map[Term]int   `json:"by_term"`
	ByCourse         map[string]int `json:"by_course"`
}

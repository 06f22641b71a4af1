package models

import "time"

// Student represents a learner registered with the campus.
type Student struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Program    string    `json:"program"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

package models

// Course is an offering students can enroll in. Capacity is advisory only.
type Course struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
	Capacity    int    `json:"capacity"`
}

package models

// TranscriptLine is one graded course on a transcript.
type TranscriptLine struct {
	CourseCode string  `json:"course_code"`
	CourseName string  `json:"course_name"`
	Term       Term    `json:"term"`
	Credits    int     `json:"credits"`
	Grade      Grade   `json:"grade"`
	Points     float64 `json:"points"`
}

// Transcript lists a student's graded courses and their credit-weighted GPA.
type Transcript struct {
	Student      Student          `json:"student"`
	Lines        []TranscriptLine `json:"lines"`
	TotalCredits int              `json:"total_credits"`
	TotalPoints  float64          `json:"total_points"`
	GPA          float64          `json:"gpa"`
}

package models

import (
	"fmt"
	"strings"
)

// Grade is the letter recorded against an enrollment.
type Grade string

// Grade symbols. GradeUngraded marks an enrollment that is still in progress.
const (
	GradeA        Grade = "A"
	GradeB        Grade = "B"
	GradeC        Grade = "C"
	GradeD        Grade = "D"
	GradeF        Grade = "F"
	GradeUngraded Grade = "UNGRADED"
)

var gradePoints = map[Grade]float64{
	GradeA: 9.0,
	GradeB: 8.0,
	GradeC: 6.0,
	GradeD: 4.0,
	GradeF: 2.0,
}

// FinalGrades lists the grades a grading flow may assign, best first.
func FinalGrades() []Grade {
	return []Grade{GradeA, GradeB, GradeC, GradeD, GradeF}
}

// Points returns the grade-point value. ok is false for UNGRADED and for
// unknown symbols; such grades never take part in GPA arithmetic.
func (g Grade) Points() (points float64, ok bool) {
	points, ok = gradePoints[g]
	return points, ok
}

// IsFinal reports whether g is one of A-F.
func (g Grade) IsFinal() bool {
	_, ok := gradePoints[g]
	return ok
}

// DisplayName is the label shown on listings and transcripts.
func (g Grade) DisplayName() string {
	if g == GradeUngraded {
		return "In Progress"
	}
	return string(g)
}

// ParseGrade accepts a final grade symbol, case-insensitively.
func ParseGrade(raw string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(raw)))
	if !g.IsFinal() {
		return "", fmt.Errorf("unknown grade %q", raw)
	}
	return g, nil
}

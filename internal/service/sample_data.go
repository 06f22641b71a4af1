package service

import (
	"context"
	"fmt"

	"github.com/noah-isme/campus-records/internal/models"
)

var (
	sampleStudents = []CreateStudentRequest{
		{ID: "101", FullName: "Ram", Email: "Ram@xyz.edu", Program: "Computer Science"},
		{ID: "102", FullName: "Siya", Email: "Siya@xyz.edu", Program: "Mathematics"},
		{ID: "103", FullName: "Dove", Email: "Dove@xyz.edu", Program: "Biology"},
	}
	sampleCourses = []CreateCourseRequest{
		{Code: "CS101", Name: "Intro to Programming", Description: "Learn basic coding skills", Credits: 3, Capacity: 30},
		{Code: "MATH201", Name: "Calculus I", Description: "Differential calculus", Credits: 4, Capacity: 25},
		{Code: "BIO101", Name: "Biology Fundamentals", Description: "Introduction to biology", Credits: 3, Capacity: 35},
		{Code: "ENG101", Name: "English Composition", Description: "Academic writing", Credits: 3, Capacity: 40},
	}
	sampleEnrollments = []EnrollRequest{
		{StudentID: "101", CourseCode: "CS101", Term: models.TermFall},
		{StudentID: "101", CourseCode: "MATH201", Term: models.TermFall},
		{StudentID: "102", CourseCode: "BIO101", Term: models.TermWinter},
		{StudentID: "103", CourseCode: "ENG101", Term: models.TermWinter},
	}
	sampleGrades = []RecordGradeRequest{
		{StudentID: "101", CourseCode: "CS101", Term: models.TermFall, Grade: models.GradeA},
		{StudentID: "101", CourseCode: "MATH201", Term: models.TermFall, Grade: models.GradeB},
	}
)

// SeedSampleData loads a small demo campus through the regular services.
func SeedSampleData(ctx context.Context, students *StudentService, courses *CourseService, enrollments *EnrollmentService) error {
	for _, req := range sampleStudents {
		if _, err := students.Add(ctx, req); err != nil {
			return fmt.Errorf("seed student %s: %w", req.ID, err)
		}
	}
	for _, req := range sampleCourses {
		if _, err := courses.Add(ctx, req); err != nil {
			return fmt.Errorf("seed course %s: %w", req.Code, err)
		}
	}
	for _, req := range sampleEnrollments {
		if _, err := enrollments.Enroll(ctx, req); err != nil {
			return fmt.Errorf("seed enrollment %s/%s: %w", req.StudentID, req.CourseCode, err)
		}
	}
	for _, req := range sampleGrades {
		if _, err := enrollments.RecordGrade(ctx, req); err != nil {
			return fmt.Errorf("seed grade %s/%s: %w", req.StudentID, req.CourseCode, err)
		}
	}
	return nil
}

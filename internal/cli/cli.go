// Package cli implements the interactive text menu over the record services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/app"
	"github.com/noah-isme/campus-records/internal/models"
	"github.com/noah-isme/campus-records/internal/service"
	appErrors "github.com/noah-isme/campus-records/pkg/errors"
	"github.com/noah-isme/campus-records/pkg/export"
)

// Session drives one menu loop reading commands from in and writing to out.
type Session struct {
	app    *app.App
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

// NewSession constructs a Session.
func NewSession(a *app.App, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{app: a, in: bufio.NewScanner(in), out: out, logger: logger}
}

// Run loops over the main menu until the user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	s.println("Welcome to Campus Course & Records Manager!")
	for {
		s.printMainMenu()
		choice, err := s.readNumber("Enter your choice: ")
		if err != nil {
			return s.finish(err)
		}

		switch choice {
		case 1:
			err = s.manageStudents(ctx)
		case 2:
			err = s.manageCourses(ctx)
		case 3:
			err = s.manageEnrollments(ctx)
		case 4:
			err = s.manageGrades(ctx)
		case 5:
			err = s.showTranscript(ctx)
		case 6:
			err = s.fileOperations(ctx)
		case 7:
			s.showReports(ctx)
		case 0:
			s.println("Thank you for using Campus Manager. Goodbye!")
			return nil
		default:
			s.println("Please choose a valid option (0-7)")
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.println("")
		s.println("Input closed. Goodbye!")
		return nil
	}
	return err
}

func (s *Session) printMainMenu() {
	s.println("")
	s.println("MAIN MENU")
	s.println("1. Student Management")
	s.println("2. Course Management")
	s.println("3. Enrollment Management")
	s.println("4. Grade Management")
	s.println("5. Student Transcripts")
	s.println("6. File Operations")
	s.println("7. Reports & Statistics")
	s.println("0. Exit")
}

func (s *Session) manageStudents(ctx context.Context) error {
	for {
		s.println("")
		s.println("STUDENT MANAGEMENT")
		s.println("1. Add New Student")
		s.println("2. View All Students")
		s.println("3. Search Student")
		s.println("0. Back to Main Menu")
		choice, err := s.readNumber("Enter your choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = s.addStudent(ctx)
		case 2:
			s.listStudents(s.app.Students.List(ctx), "No students found.")
		case 3:
			var query string
			if query, err = s.readText("Enter student name or ID to search: "); err == nil {
				s.println("SEARCH RESULTS:")
				s.listStudents(s.app.Students.Search(ctx, query), "No students found matching your search.")
			}
		case 0:
			return nil
		default:
			s.println("Invalid choice")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) addStudent(ctx context.Context) error {
	s.println("ADD NEW STUDENT")
	id, err := s.readText("Student ID: ")
	if err != nil {
		return err
	}
	if s.app.Students.Exists(ctx, id) {
		s.println("This student ID already exists!")
		return nil
	}
	req := service.CreateStudentRequest{ID: id}
	if req.FullName, err = s.readText("Full Name: "); err != nil {
		return err
	}
	if req.Email, err = s.readText("Email: "); err != nil {
		return err
	}
	if req.Program, err = s.readText("Program: "); err != nil {
		return err
	}
	if _, err := s.app.Students.Add(ctx, req); err != nil {
		s.reportError("add student", err)
		return nil
	}
	s.println("Student added successfully!")
	return nil
}

func (s *Session) listStudents(students []models.Student, empty string) {
	if len(students) == 0 {
		s.println(empty)
		return
	}
	for _, st := range students {
		s.printf("%s (%s) - %s - %s\n", st.FullName, st.ID, st.Program, st.Email)
	}
}

func (s *Session) manageCourses(ctx context.Context) error {
	for {
		s.println("")
		s.println("COURSE MANAGEMENT")
		s.println("1. Add New Course")
		s.println("2. View All Courses")
		s.println("3. Search Course")
		s.println("4. Remove Course")
		s.println("0. Back to Main Menu")
		choice, err := s.readNumber("Enter your choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = s.addCourse(ctx)
		case 2:
			s.listCourses(s.app.Courses.List(ctx), "No courses found.")
		case 3:
			var query string
			if query, err = s.readText("Enter course code or name to search: "); err == nil {
				s.println("SEARCH RESULTS:")
				s.listCourses(s.app.Courses.Search(ctx, query), "No courses found matching your search.")
			}
		case 4:
			var code string
			if code, err = s.readText("Course Code: "); err == nil {
				if removeErr := s.app.Courses.Remove(ctx, code); removeErr != nil {
					s.reportError("remove course", removeErr)
				} else {
					s.println("Course removed.")
				}
			}
		case 0:
			return nil
		default:
			s.println("Invalid choice")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) addCourse(ctx context.Context) error {
	s.println("ADD NEW COURSE")
	code, err := s.readText("Course Code: ")
	if err != nil {
		return err
	}
	if s.app.Courses.Exists(ctx, code) {
		s.println("This course code already exists!")
		return nil
	}
	req := service.CreateCourseRequest{Code: code}
	if req.Name, err = s.readText("Course Name: "); err != nil {
		return err
	}
	if req.Description, err = s.readText("Description: "); err != nil {
		return err
	}
	if req.Credits, err = s.readNumber("Credits: "); err != nil {
		return err
	}
	if req.Capacity, err = s.readNumber("Capacity: "); err != nil {
		return err
	}
	if _, err := s.app.Courses.Add(ctx, req); err != nil {
		s.reportError("add course", err)
		return nil
	}
	s.println("Course added successfully!")
	return nil
}

func (s *Session) listCourses(courses []models.Course, empty string) {
	if len(courses) == 0 {
		s.println(empty)
		return
	}
	for _, c := range courses {
		s.printf("%s: %s (%d credits) - Capacity: %d\n", c.Code, c.Name, c.Credits, c.Capacity)
	}
}

func (s *Session) manageEnrollments(ctx context.Context) error {
	for {
		s.println("")
		s.println("ENROLLMENT MANAGEMENT")
		s.println("1. Enroll Student in Course")
		s.println("2. View All Enrollments")
		s.println("0. Back to Main Menu")
		choice, err := s.readNumber("Enter your choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = s.enroll(ctx)
		case 2:
			s.listEnrollments(ctx)
		case 0:
			return nil
		default:
			s.println("Invalid choice")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) enroll(ctx context.Context) error {
	s.println("ENROLL STUDENT")
	s.listStudents(s.app.Students.List(ctx), "No students found.")
	studentID, err := s.readText("Enter Student ID: ")
	if err != nil {
		return err
	}
	s.listCourses(s.app.Courses.List(ctx), "No courses found.")
	courseCode, err := s.readText("Enter Course Code: ")
	if err != nil {
		return err
	}
	term, ok, err := s.chooseTerm()
	if err != nil || !ok {
		return err
	}

	_, err = s.app.Enrollments.Enroll(ctx, service.EnrollRequest{StudentID: studentID, CourseCode: courseCode, Term: term})
	if err != nil {
		s.reportError("enroll", err)
		return nil
	}
	s.println("Student enrolled successfully!")
	return nil
}

func (s *Session) listEnrollments(ctx context.Context) {
	enrollments := s.app.Enrollments.List(ctx)
	if len(enrollments) == 0 {
		s.println("No enrollments found.")
		return
	}
	for _, e := range enrollments {
		student, err := s.app.Students.Get(ctx, e.StudentID)
		if err != nil {
			continue
		}
		course, err := s.app.Courses.Get(ctx, e.CourseCode)
		if err != nil {
			continue
		}
		s.printf("%s (%s) -> %s (%s) - %s - Grade: %s\n",
			student.FullName, student.ID, course.Name, course.Code, e.Term.DisplayName(), e.Grade.DisplayName())
	}
}

func (s *Session) manageGrades(ctx context.Context) error {
	s.println("")
	s.println("GRADE MANAGEMENT")
	s.listEnrollments(ctx)

	studentID, err := s.readText("Enter Student ID: ")
	if err != nil {
		return err
	}
	courseCode, err := s.readText("Enter Course Code: ")
	if err != nil {
		return err
	}
	term, ok, err := s.chooseTerm()
	if err != nil || !ok {
		return err
	}
	grade, ok, err := s.chooseGrade()
	if err != nil || !ok {
		return err
	}

	enrollment, err := s.app.Enrollments.RecordGrade(ctx, service.RecordGradeRequest{
		StudentID:  studentID,
		CourseCode: courseCode,
		Term:       term,
		Grade:      grade,
	})
	if err != nil {
		s.reportError("record grade", err)
		return nil
	}
	s.printf("Grade recorded: %s\n", enrollment.Grade.DisplayName())
	return nil
}

// chooseTerm returns ok=false after reporting an out-of-range choice.
func (s *Session) chooseTerm() (models.Term, bool, error) {
	terms := models.Terms()
	s.println("Select Semester:")
	for i, t := range terms {
		s.printf("%d. %s\n", i+1, t.DisplayName())
	}
	choice, err := s.readNumber("Choose semester: ")
	if err != nil {
		return "", false, err
	}
	if choice < 1 || choice > len(terms) {
		s.reportError("choose semester", appErrors.ErrInvalidTermChoice)
		return "", false, nil
	}
	return terms[choice-1], true, nil
}

func (s *Session) chooseGrade() (models.Grade, bool, error) {
	grades := models.FinalGrades()
	s.println("Select Grade:")
	for i, g := range grades {
		s.printf("%d. %s\n", i+1, g.DisplayName())
	}
	choice, err := s.readNumber("Choose grade: ")
	if err != nil {
		return "", false, err
	}
	if choice < 1 || choice > len(grades) {
		s.reportError("choose grade", appErrors.ErrInvalidGradeChoice)
		return "", false, nil
	}
	return grades[choice-1], true, nil
}

func (s *Session) showTranscript(ctx context.Context) error {
	s.println("")
	s.println("STUDENT TRANSCRIPT")
	s.listStudents(s.app.Students.List(ctx), "No students found.")
	studentID, err := s.readText("Enter Student ID: ")
	if err != nil {
		return err
	}

	transcript, err := s.app.Transcripts.Build(ctx, studentID)
	if err != nil {
		s.reportError("transcript", err)
		return nil
	}
	if len(s.app.Enrollments.ListByStudent(ctx, studentID)) == 0 {
		s.println("No courses found for this student.")
		return nil
	}

	s.println("")
	s.println("OFFICIAL TRANSCRIPT")
	s.printf("Student: %s\n", transcript.Student.FullName)
	s.printf("ID: %s\n", transcript.Student.ID)
	s.printf("Program: %s\n", transcript.Student.Program)
	s.println("")
	s.println("Courses:")
	for _, line := range transcript.Lines {
		s.printf("%s: %s (%d credits) - %s - %s\n",
			line.CourseCode, line.CourseName, line.Credits, line.Term.DisplayName(), line.Grade.DisplayName())
	}
	s.printf("Total Credits: %d\n", transcript.TotalCredits)
	s.printf("GPA: %.2f\n", transcript.GPA)
	return nil
}

func (s *Session) fileOperations(ctx context.Context) error {
	s.println("")
	s.println("FILE OPERATIONS")
	s.println("1. Export Transcript as CSV")
	s.println("2. Export Transcript as PDF")
	s.println("3. Export All Transcripts as CSV")
	s.println("0. Back to Main Menu")
	choice, err := s.readNumber("Enter your choice: ")
	if err != nil {
		return err
	}

	var format export.Format
	switch choice {
	case 1:
		format = export.FormatCSV
	case 2:
		format = export.FormatPDF
	case 3:
		s.exportAll(ctx)
		return nil
	case 0:
		return nil
	default:
		s.println("Invalid choice")
		return nil
	}

	studentID, err := s.readText("Enter Student ID: ")
	if err != nil {
		return err
	}
	path, err := s.app.Exports.SaveTranscript(ctx, studentID, format)
	if err != nil {
		s.reportError("export transcript", err)
		return nil
	}
	s.printf("Transcript exported to %s\n", path)
	return nil
}

func (s *Session) exportAll(ctx context.Context) {
	students := s.app.Students.List(ctx)
	ids := make([]string, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	saved, err := s.app.Exports.SaveTranscripts(ctx, ids, export.FormatCSV)
	if err != nil {
		s.reportError("export transcripts", err)
		return
	}
	for _, res := range saved {
		if res.Error != "" {
			s.printf("  %s: failed (%s)\n", res.StudentID, res.Error)
			continue
		}
		s.printf("  %s: %s\n", res.StudentID, res.Path)
	}
	s.printf("Exported %d transcripts.\n", len(saved))
}

func (s *Session) showReports(ctx context.Context) {
	stats := s.app.Statistics.Summary(ctx)

	s.println("")
	s.println("CAMPUS STATISTICS")
	s.printf("Total Students: %d\n", stats.TotalStudents)
	s.printf("Total Courses: %d\n", stats.TotalCourses)
	s.printf("Total Enrollments: %d\n", stats.TotalEnrollments)

	s.println("")
	s.println("Enrollments by Semester:")
	for _, term := range models.Terms() {
		s.printf("  %s: %d enrollments\n", term.DisplayName(), stats.ByTerm[term])
	}

	s.println("")
	s.println("Course Enrollment Counts:")
	for _, course := range s.app.Courses.List(ctx) {
		if count := stats.ByCourse[course.Code]; count > 0 {
			s.printf("  %s: %d students\n", course.Name, count)
		}
	}
}

func (s *Session) reportError(op string, err error) {
	appErr := appErrors.FromError(err)
	s.printf("Error: %s\n", appErr.Message)
	s.logger.Debug("cli operation failed", zap.String("op", op), zap.String("code", appErr.Code), zap.Error(err))
}

func (s *Session) readText(prompt string) (string, error) {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) readNumber(prompt string) (int, error) {
	for {
		raw, err := s.readText(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(raw)
		if err == nil {
			return n, nil
		}
		s.println("Please enter a valid number.")
	}
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

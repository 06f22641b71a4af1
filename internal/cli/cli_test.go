package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/app"
	"github.com/noah-isme/campus-records/pkg/config"
)

func newTestApp(t *testing.T, seed bool) (*app.App, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Env:     config.EnvDevelopment,
		Records: config.RecordsConfig{SeedSampleData: seed},
		Export:  config.ExportConfig{Dir: dir},
	}
	a, err := app.New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	return a, dir
}

func runScript(t *testing.T, a *app.App, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, NewSession(a, in, &out, zap.NewNop()).Run(context.Background()))
	return out.String()
}

func TestSessionEnrollGradeTranscript(t *testing.T) {
	a, _ := newTestApp(t, false)

	out := runScript(t, a,
		"1", "1", "S1", "Ada Lovelace", "ada@campus.edu", "Mathematics", "0",
		"2", "1", "CS101", "Intro to Programming", "Basics", "3", "30", "0",
		"3", "1", "S1", "CS101", "1", "0",
		"4", "S1", "CS101", "1", "1",
		"5", "S1",
		"0",
	)

	assert.Contains(t, out, "Student added successfully!")
	assert.Contains(t, out, "Course added successfully!")
	assert.Contains(t, out, "Student enrolled successfully!")
	assert.Contains(t, out, "Grade recorded: A")
	assert.Contains(t, out, "CS101: Intro to Programming (3 credits) - Fall - A")
	assert.Contains(t, out, "GPA: 9.00")
	assert.Contains(t, out, "Goodbye!")
}

func TestSessionRejectsDuplicateStudent(t *testing.T) {
	a, _ := newTestApp(t, true)

	out := runScript(t, a, "1", "1", "101", "0", "0")

	assert.Contains(t, out, "This student ID already exists!")
	student, err := a.Students.Get(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "Ram", student.FullName)
}

func TestSessionInvalidChoices(t *testing.T) {
	a, _ := newTestApp(t, true)

	out := runScript(t, a,
		"abc", "9",
		"3", "1", "101", "BIO101", "7", "0",
		"4", "101", "CS101", "1", "6",
		"0",
	)

	assert.Contains(t, out, "Please enter a valid number.")
	assert.Contains(t, out, "Please choose a valid option (0-7)")
	assert.Contains(t, out, "Error: invalid semester choice")
	assert.Contains(t, out, "Error: invalid grade choice")
	assert.Equal(t, 4, a.Enrollments.Count(context.Background()))
}

func TestSessionReportsTypedErrors(t *testing.T) {
	a, _ := newTestApp(t, true)

	out := runScript(t, a,
		"3", "1", "999", "CS101", "1", "0",
		"4", "102", "CS101", "1", "1",
		"5", "999",
		"0",
	)

	assert.Contains(t, out, "Error: student 999 not found")
	assert.Contains(t, out, "Error: no enrollment for 102 in CS101 (Fall)")
	assert.Equal(t, 2, strings.Count(out, "Error: student 999 not found"))
}

func TestSessionExitsOnEOF(t *testing.T) {
	a, _ := newTestApp(t, true)

	var out bytes.Buffer
	err := NewSession(a, strings.NewReader("1\n"), &out, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Input closed. Goodbye!")
}

func TestSessionReports(t *testing.T) {
	a, _ := newTestApp(t, true)

	out := runScript(t, a, "7", "0")

	assert.Contains(t, out, "Total Students: 3")
	assert.Contains(t, out, "Total Courses: 4")
	assert.Contains(t, out, "Total Enrollments: 4")
	assert.Contains(t, out, "  Fall: 2 enrollments")
	assert.Contains(t, out, "  Winter: 2 enrollments")
	assert.Contains(t, out, "  Intro to Programming: 1 students")
}

func TestSessionExportsTranscript(t *testing.T) {
	a, dir := newTestApp(t, true)

	out := runScript(t, a, "6", "1", "101", "0")

	assert.Contains(t, out, "Transcript exported to")
	data, err := os.ReadFile(filepath.Join(dir, "transcript_101.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "GPA,8.43")
}

func TestSessionExportsAllTranscripts(t *testing.T) {
	a, dir := newTestApp(t, true)

	out := runScript(t, a, "6", "3", "0")

	assert.Contains(t, out, "Exported 3 transcripts.")
	for _, id := range []string{"101", "102", "103"} {
		assert.FileExists(t, filepath.Join(dir, "transcript_"+id+".csv"))
	}
}

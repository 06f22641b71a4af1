package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-records/internal/models"
)

func TestStatisticsServiceEmptyLedger(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	assert.Equal(t, map[models.Term]int{models.TermFall: 0, models.TermWinter: 0}, env.statistics.TermCounts(ctx))
	assert.Empty(t, env.statistics.CourseCounts(ctx))
}

func TestStatisticsServiceCounts(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.addStudent(t, "101")
	env.addStudent(t, "102")
	env.addCourse(t, "CS101", 3)
	env.addCourse(t, "MATH201", 4)
	env.addCourse(t, "ENG101", 3)
	enrollAndGrade(t, env, "101", "CS101", models.TermFall, models.GradeA)
	enrollAndGrade(t, env, "102", "CS101", models.TermFall, models.GradeUngraded)
	enrollAndGrade(t, env, "101", "MATH201", models.TermFall, models.GradeUngraded)

	terms := env.statistics.TermCounts(ctx)
	assert.Equal(t, 3, terms[models.TermFall])
	count, ok := terms[models.TermWinter]
	assert.True(t, ok)
	assert.Zero(t, count)

	courses := env.statistics.CourseCounts(ctx)
	assert.Equal(t, map[string]int{"CS101": 2, "MATH201": 1}, courses)
	_, ok = courses["ENG101"]
	assert.False(t, ok)
}

func TestStatisticsServiceSummary(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)
	env.addCourse(t, "BIO101", 3)
	enrollAndGrade(t, env, "101", "CS101", models.TermWinter, models.GradeUngraded)

	summary := env.statistics.Summary(ctx)
	assert.Equal(t, 1, summary.TotalStudents)
	assert.Equal(t, 2, summary.TotalCourses)
	assert.Equal(t, 1, summary.TotalEnrollments)
	assert.Equal(t, map[models.Term]int{models.TermFall: 0, models.TermWinter: 1}, summary.ByTerm)

	enrollAndGrade(t, env, "101", "BIO101", models.TermFall, models.GradeUngraded)
	summary = env.statistics.Summary(ctx)
	assert.Equal(t, 2, summary.TotalEnrollments)
	assert.Equal(t, map[string]int{"CS101": 1, "BIO101": 1}, summary.ByCourse)

	// counts are ledger-only: removing a course keeps its enrollments counted
	assert.NoError(t, env.courses.Remove(ctx, "BIO101"))
	assert.Equal(t, 1, env.statistics.CourseCounts(ctx)["BIO101"])
}

type enrollingSnapshotter struct {
	enrollmentSnapshotter
	enroll func()
	done   bool
}

func (e *enrollingSnapshotter) List() []models.Enrollment {
	snapshot := e.enrollmentSnapshotter.List()
	if !e.done {
		e.done = true
		e.enroll()
	}
	return snapshot
}

func TestStatisticsServiceDoesNotCacheStaleCounts(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)

	snapshotter := &enrollingSnapshotter{enrollmentSnapshotter: env.enrollmentRepo, enroll: func() {
		_, err := env.enrollments.Enroll(ctx, EnrollRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermWinter})
		require.NoError(t, err)
	}}
	overlapping := NewStatisticsService(snapshotter, env.studentRepo, env.courseRepo, env.cache)

	assert.Equal(t, 0, overlapping.TermCounts(ctx)[models.TermWinter])
	assert.Equal(t, 1, env.statistics.TermCounts(ctx)[models.TermWinter])
	assert.Equal(t, 1, env.statistics.Summary(ctx).TotalEnrollments)
}

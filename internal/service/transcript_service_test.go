package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-records/internal/models"
	appErrors "github.com/noah-isme/campus-records/pkg/errors"
)

func enrollAndGrade(t *testing.T, env *testEnv, studentID, courseCode string, term models.Term, grade models.Grade) {
	t.Helper()
	ctx := context.Background()
	_, err := env.enrollments.Enroll(ctx, EnrollRequest{StudentID: studentID, CourseCode: courseCode, Term: term})
	require.NoError(t, err)
	if grade == models.GradeUngraded {
		return
	}
	_, err = env.enrollments.RecordGrade(ctx, RecordGradeRequest{StudentID: studentID, CourseCode: courseCode, Term: term, Grade: grade})
	require.NoError(t, err)
}

func TestTranscriptServiceWeightedGPA(t *testing.T) {
	env := newTestEnv(t, false)
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)
	env.addCourse(t, "MATH201", 4)
	enrollAndGrade(t, env, "101", "CS101", models.TermFall, models.GradeA)
	enrollAndGrade(t, env, "101", "MATH201", models.TermFall, models.GradeB)

	transcript, err := env.transcripts.Build(context.Background(), "101")
	require.NoError(t, err)
	require.Len(t, transcript.Lines, 2)
	assert.Equal(t, "CS101", transcript.Lines[0].CourseCode)
	assert.Equal(t, "MATH201", transcript.Lines[1].CourseCode)
	assert.Equal(t, 7, transcript.TotalCredits)
	assert.InDelta(t, 59.0, transcript.TotalPoints, 1e-9)
	assert.InDelta(t, 8.4286, transcript.GPA, 1e-3)
}

func TestTranscriptServiceExcludesUngraded(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)
	enrollAndGrade(t, env, "101", "CS101", models.TermFall, models.GradeUngraded)

	transcript, err := env.transcripts.Build(ctx, "101")
	require.NoError(t, err)
	assert.Empty(t, transcript.Lines)
	assert.Zero(t, transcript.TotalCredits)
	assert.Equal(t, 0.0, transcript.GPA)

	_, err = env.enrollments.RecordGrade(ctx, RecordGradeRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermFall, Grade: models.GradeD})
	require.NoError(t, err)
	transcript, err = env.transcripts.Build(ctx, "101")
	require.NoError(t, err)
	require.Len(t, transcript.Lines, 1)
	assert.Equal(t, 4.0, transcript.GPA)
}

func TestTranscriptServiceSkipsRemovedCourse(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)
	env.addCourse(t, "BIO101", 3)
	enrollAndGrade(t, env, "101", "CS101", models.TermFall, models.GradeA)
	enrollAndGrade(t, env, "101", "BIO101", models.TermWinter, models.GradeF)

	require.NoError(t, env.courses.Remove(ctx, "BIO101"))

	transcript, err := env.transcripts.Build(ctx, "101")
	require.NoError(t, err)
	require.Len(t, transcript.Lines, 1)
	assert.Equal(t, "CS101", transcript.Lines[0].CourseCode)
	assert.Equal(t, 9.0, transcript.GPA)
	assert.Len(t, env.enrollments.ListByStudent(ctx, "101"), 2)
}

func TestTranscriptServiceUnknownStudent(t *testing.T) {
	env := newTestEnv(t, false)
	_, err := env.transcripts.Build(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrStudentNotFound))
}

func TestTranscriptServiceOnlyOwnEnrollments(t *testing.T) {
	env := newTestEnv(t, false)
	env.addStudent(t, "101")
	env.addStudent(t, "102")
	env.addCourse(t, "CS101", 3)
	enrollAndGrade(t, env, "102", "CS101", models.TermFall, models.GradeA)

	transcript, err := env.transcripts.Build(context.Background(), "101")
	require.NoError(t, err)
	assert.Empty(t, transcript.Lines)
	assert.Equal(t, "101", transcript.Student.ID)
}

func TestTranscriptServiceCacheInvalidatedByGrading(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)
	enrollAndGrade(t, env, "101", "CS101", models.TermFall, models.GradeA)

	first, err := env.transcripts.Build(ctx, "101")
	require.NoError(t, err)
	cached, err := env.transcripts.Build(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, first.Lines, cached.Lines)
	assert.Equal(t, first.GPA, cached.GPA)
	assert.Equal(t, uint64(1), env.metrics.Snapshot().CacheHits)

	_, err = env.enrollments.RecordGrade(ctx, RecordGradeRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermFall, Grade: models.GradeB})
	require.NoError(t, err)
	regraded, err := env.transcripts.Build(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, 8.0, regraded.GPA)

	require.NoError(t, env.courses.Remove(ctx, "CS101"))
	afterRemoval, err := env.transcripts.Build(ctx, "101")
	require.NoError(t, err)
	assert.Empty(t, afterRemoval.Lines)
}

// regradingLister records a new grade right after the transcript snapshot is
// taken, the way an overlapping request would.
type regradingLister struct {
	inner   enrollmentLister
	regrade func()
	done    bool
}

func (l *regradingLister) ListByStudent(studentID string) []models.Enrollment {
	snapshot := l.inner.ListByStudent(studentID)
	if !l.done {
		l.done = true
		l.regrade()
	}
	return snapshot
}

func TestTranscriptServiceDoesNotCacheStaleBuild(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)
	enrollAndGrade(t, env, "101", "CS101", models.TermFall, models.GradeA)

	lister := &regradingLister{inner: env.enrollmentRepo, regrade: func() {
		_, err := env.enrollments.RecordGrade(ctx, RecordGradeRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermFall, Grade: models.GradeF})
		require.NoError(t, err)
	}}
	overlapping := NewTranscriptService(env.studentRepo, env.courseRepo, lister, env.cache, env.metrics, nil)

	first, err := overlapping.Build(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, 9.0, first.GPA)

	second, err := env.transcripts.Build(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, 2.0, second.GPA)
	assert.Equal(t, models.GradeF, second.Lines[0].Grade)
}

func TestGPA(t *testing.T) {
	assert.Equal(t, 0.0, GPA(0, 0))
	assert.Equal(t, 0.0, GPA(12, 0))
	assert.InDelta(t, 8.4286, GPA(59, 7), 1e-3)
}

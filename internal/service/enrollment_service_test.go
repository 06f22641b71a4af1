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

func TestEnrollmentServiceEnroll(t *testing.T) {
	env := newTestEnv(t, false)
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)

	enrollment, err := env.enrollments.Enroll(context.Background(), EnrollRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermFall})
	require.NoError(t, err)
	assert.Equal(t, models.GradeUngraded, enrollment.Grade)
	assert.False(t, enrollment.EnrolledAt.IsZero())
	assert.Equal(t, 1, env.enrollmentRepo.Count())
}

func TestEnrollmentServiceEnrollUnknownStudent(t *testing.T) {
	env := newTestEnv(t, false)
	env.addCourse(t, "CS101", 3)

	_, err := env.enrollments.Enroll(context.Background(), EnrollRequest{StudentID: "999", CourseCode: "CS101", Term: models.TermFall})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrStudentNotFound))
	assert.Zero(t, env.enrollmentRepo.Count())
}

func TestEnrollmentServiceEnrollUnknownCourse(t *testing.T) {
	env := newTestEnv(t, false)
	env.addStudent(t, "101")

	_, err := env.enrollments.Enroll(context.Background(), EnrollRequest{StudentID: "101", CourseCode: "NOPE", Term: models.TermWinter})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrCourseNotFound))
	assert.Zero(t, env.enrollmentRepo.Count())
}

func TestEnrollmentServiceEnrollChecksStudentFirst(t *testing.T) {
	env := newTestEnv(t, false)
	_, err := env.enrollments.Enroll(context.Background(), EnrollRequest{StudentID: "999", CourseCode: "NOPE", Term: models.TermFall})
	assert.True(t, errors.Is(err, appErrors.ErrStudentNotFound))
}

func TestEnrollmentServiceEnrollInvalidTerm(t *testing.T) {
	env := newTestEnv(t, false)
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)

	_, err := env.enrollments.Enroll(context.Background(), EnrollRequest{StudentID: "101", CourseCode: "CS101", Term: "SPRING"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidTermChoice))
	assert.Zero(t, env.enrollmentRepo.Count())
}

func TestEnrollmentServiceReEnrollResetsGrade(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)

	req := EnrollRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermFall}
	_, err := env.enrollments.Enroll(ctx, req)
	require.NoError(t, err)
	_, err = env.enrollments.RecordGrade(ctx, RecordGradeRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermFall, Grade: models.GradeA})
	require.NoError(t, err)

	_, err = env.enrollments.Enroll(ctx, req)
	require.NoError(t, err)

	list := env.enrollments.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, models.GradeUngraded, list[0].Grade)

	snapshot := env.metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.EnrollmentsCreated)
	assert.Equal(t, uint64(1), snapshot.EnrollmentsReplaced)
}

func TestEnrollmentServiceRecordGradeMissingKey(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)
	_, err := env.enrollments.Enroll(ctx, EnrollRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermFall})
	require.NoError(t, err)

	_, err = env.enrollments.RecordGrade(ctx, RecordGradeRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermWinter, Grade: models.GradeB})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrEnrollmentNotFound))
	assert.Equal(t, 1, env.enrollmentRepo.Count())
}

func TestEnrollmentServiceRecordGradeRejectsUngraded(t *testing.T) {
	env := newTestEnv(t, false)
	_, err := env.enrollments.RecordGrade(context.Background(), RecordGradeRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermFall, Grade: models.GradeUngraded})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidGradeChoice))
}

func TestEnrollmentServiceRegradeKeepsLatest(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)
	_, err := env.enrollments.Enroll(ctx, EnrollRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermFall})
	require.NoError(t, err)

	for _, grade := range []models.Grade{models.GradeA, models.GradeF, models.GradeC} {
		_, err := env.enrollments.RecordGrade(ctx, RecordGradeRequest{StudentID: "101", CourseCode: "CS101", Term: models.TermFall, Grade: grade})
		require.NoError(t, err)
	}

	list := env.enrollments.ListByStudent(ctx, "101")
	require.Len(t, list, 1)
	assert.Equal(t, models.GradeC, list[0].Grade)

	transcript, err := env.transcripts.Build(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, 6.0, transcript.GPA)
	assert.Equal(t, uint64(3), env.metrics.Snapshot().GradesRecorded)
}

func TestEnrollmentServiceListByStudentEmpty(t *testing.T) {
	env := newTestEnv(t, false)
	list := env.enrollments.ListByStudent(context.Background(), "nobody")
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestEnrollmentServiceRequiresKeys(t *testing.T) {
	env := newTestEnv(t, false)
	env.addStudent(t, "101")
	env.addCourse(t, "CS101", 3)
	ctx := context.Background()

	_, err := env.enrollments.Enroll(ctx, EnrollRequest{StudentID: "", CourseCode: "CS101", Term: models.TermFall})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = env.enrollments.Enroll(ctx, EnrollRequest{StudentID: "101", CourseCode: "", Term: models.TermFall})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, env.enrollmentRepo.Count())

	_, err = env.enrollments.RecordGrade(ctx, RecordGradeRequest{StudentID: "", CourseCode: "CS101", Term: models.TermFall, Grade: models.GradeA})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = env.enrollments.RecordGrade(ctx, RecordGradeRequest{StudentID: "101", CourseCode: "", Term: models.TermFall, Grade: models.GradeA})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

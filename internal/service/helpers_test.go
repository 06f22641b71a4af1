package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/repository"
)

type testEnv struct {
	studentRepo    *repository.StudentRepository
	courseRepo     *repository.CourseRepository
	enrollmentRepo *repository.EnrollmentRepository
	cache          *CacheService
	metrics        *MetricsService
	students       *StudentService
	courses        *CourseService
	enrollments    *EnrollmentService
	transcripts    *TranscriptService
	statistics     *StatisticsService
}

func newTestEnv(t *testing.T, cacheEnabled bool) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	env := &testEnv{
		studentRepo:    repository.NewStudentRepository(),
		courseRepo:     repository.NewCourseRepository(),
		enrollmentRepo: repository.NewEnrollmentRepository(),
		metrics:        NewMetricsService(),
	}
	env.cache = NewCacheService(repository.NewCacheRepository(time.Minute, time.Minute, logger), env.metrics, time.Minute, logger, cacheEnabled)
	env.students = NewStudentService(env.studentRepo, env.cache, nil, logger)
	env.courses = NewCourseService(env.courseRepo, env.cache, nil, logger)
	env.enrollments = NewEnrollmentService(env.enrollmentRepo, env.studentRepo, env.courseRepo, env.cache, env.metrics, nil, logger)
	env.transcripts = NewTranscriptService(env.studentRepo, env.courseRepo, env.enrollmentRepo, env.cache, env.metrics, logger)
	env.statistics = NewStatisticsService(env.enrollmentRepo, env.studentRepo, env.courseRepo, env.cache)
	return env
}

func (e *testEnv) addStudent(t *testing.T, id string) {
	t.Helper()
	_, err := e.students.Add(context.Background(), CreateStudentRequest{ID: id, FullName: "Student " + id})
	require.NoError(t, err)
}

func (e *testEnv) addCourse(t *testing.T, code string, credits int) {
	t.Helper()
	_, err := e.courses.Add(context.Background(), CreateCourseRequest{Code: code, Name: "Course " + code, Credits: credits, Capacity: 30})
	require.NoError(t, err)
}

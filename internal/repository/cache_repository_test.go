package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/models"
	appErrors "github.com/noah-isme/campus-records/pkg/errors"
)

func TestCacheRepositoryRoundTrip(t *testing.T) {
	repo := NewCacheRepository(time.Minute, time.Minute, zap.NewNop())
	ctx := context.Background()

	var miss models.Transcript
	err := repo.Get(ctx, "transcript:101", &miss)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))

	in := models.Transcript{Student: models.Student{ID: "101"}, GPA: 8.5, Lines: []models.TranscriptLine{{CourseCode: "CS101", Grade: models.GradeA}}}
	require.NoError(t, repo.Set(ctx, "transcript:101", in, time.Minute))
	in.Lines[0].Grade = models.GradeF

	var out models.Transcript
	require.NoError(t, repo.Get(ctx, "transcript:101", &out))
	assert.Equal(t, 8.5, out.GPA)
	assert.Equal(t, models.GradeA, out.Lines[0].Grade)
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	repo := NewCacheRepository(time.Minute, time.Minute, nil)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "transcript:101", 1, time.Minute))
	require.NoError(t, repo.Set(ctx, "transcript:a/b", 1, time.Minute))
	require.NoError(t, repo.Set(ctx, "stats:terms", 1, time.Minute))

	require.NoError(t, repo.DeleteByPattern(ctx, "transcript:*"))

	var v int
	assert.Error(t, repo.Get(ctx, "transcript:101", &v))
	assert.Error(t, repo.Get(ctx, "transcript:a/b", &v))
	require.NoError(t, repo.Get(ctx, "stats:terms", &v))

	require.NoError(t, repo.DeleteByPattern(ctx, "stats:terms"))
	assert.Error(t, repo.Get(ctx, "stats:terms", &v))
}

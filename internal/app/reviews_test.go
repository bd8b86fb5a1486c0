package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate_hub/internal/app"
	"estate_hub/internal/domain"
	"estate_hub/internal/storage/memory"
)

func TestReviews_ListPrecedence(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	svc := app.NewReviewService(repos.Reviews)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []domain.Review{
		{PropertyID: "p1", UserEmail: "a@x.com", Comment: "t1", Time: base.Add(1 * time.Hour)},
		{PropertyID: "p2", UserEmail: "b@x.com", Comment: "t3", Time: base.Add(3 * time.Hour)},
		{PropertyID: "p1", UserEmail: "b@x.com", Comment: "t2", Time: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		_, err := repos.Reviews.Insert(ctx, &seed[i])
		require.NoError(t, err)
	}

	latest, err := svc.List(ctx, 2, "a@x.com")
	require.NoError(t, err)
	require.Len(t, latest, 2, "latest wins over email")
	assert.Equal(t, "t3", latest[0].Comment)
	assert.Equal(t, "t2", latest[1].Comment)

	mine, err := svc.List(ctx, 0, "b@x.com")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.List(ctx, 0, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byProp, err := svc.ListByProperty(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, byProp, 2)

	none, err := svc.ListByProperty(ctx, "nope")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestReviews_CreateStampsTime(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	svc := app.NewReviewService(repos.Reviews)

	old := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Now().UTC()
	_, err := svc.Create(ctx, domain.Review{PropertyID: "p1", Comment: "nice", Time: old})
	require.NoError(t, err)

	out, err := svc.List(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.False(t, out[0].Time.Before(before))
}

func TestReviews_DeleteReturnsRawResult(t *testing.T) {
	ctx := context.Background()
	svc := app.NewReviewService(memory.New().Repos().Reviews)

	res, err := svc.Delete(ctx, mustID(t, "64b7f0c2a1b2c3d4e5f60718"))
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Zero(t, res.DeletedCount)
}

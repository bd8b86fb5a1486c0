package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/domain"
	"estate_hub/internal/storage/memory"
)

func TestInsertAssignsIDs(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	repos := mem.Repos()

	u := domain.User{Email: "a@x.com"}
	res, err := repos.Users.Insert(ctx, &u)
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Equal(t, res.InsertedID, u.ID)

	got, err := repos.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	_, err = repos.Users.FindByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, mem.Count("users"))
	assert.Zero(t, mem.Count("unknown"))
}

func TestListReturnsEmptySlice(t *testing.T) {
	repos := memory.New().Repos()
	out, err := repos.Properties.List(context.Background(), domain.PropertyFilter{AgentEmail: "x"})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestUpdateCounts(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	o := domain.Offer{Status: domain.OfferPending}
	_, err := repos.Offers.Insert(ctx, &o)
	require.NoError(t, err)

	res, err := repos.Offers.SetStatus(ctx, o.ID, domain.OfferRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, res)

	res, err = repos.Offers.SetStatus(ctx, o.ID, domain.OfferRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateResult{Acknowledged: true, MatchedCount: 1}, res)

	res, err = repos.Offers.SetStatus(ctx, primitive.NewObjectID(), domain.OfferRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateResult{Acknowledged: true}, res)
}

func TestOfferFilters(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	p1, p2 := primitive.NewObjectID(), primitive.NewObjectID()
	offers := []domain.Offer{
		{PropertyID: p1, Status: domain.OfferPending, BuyerEmail: "b@x.com"},
		{PropertyID: p1, Status: domain.OfferPending},
		{PropertyID: p2, Status: domain.OfferBought, AgentEmail: "ag@x.com"},
	}
	for i := range offers {
		_, err := repos.Offers.Insert(ctx, &offers[i])
		require.NoError(t, err)
	}

	count := func(f domain.OfferFilter) int {
		out, err := repos.Offers.List(ctx, f)
		require.NoError(t, err)
		return len(out)
	}
	assert.Equal(t, 3, count(domain.OfferFilter{}))
	assert.Equal(t, 1, count(domain.OfferFilter{BuyerEmail: "b@x.com"}))
	assert.Equal(t, 1, count(domain.OfferFilter{PropertyID: p1, ExcludeID: offers[0].ID}))
	assert.Equal(t, 3, count(domain.OfferFilter{PropertyIDs: []primitive.ObjectID{p1, p2}}))
	assert.Equal(t, 0, count(domain.OfferFilter{PropertyIDs: []primitive.ObjectID{}}))
	assert.Equal(t, 1, count(domain.OfferFilter{AgentEmail: "ag@x.com", Status: domain.OfferBought}))
}

func TestDeleteLeavesOthers(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	repos := mem.Repos()
	a := domain.Review{Comment: "a"}
	b := domain.Review{Comment: "b"}
	_, _ = repos.Reviews.Insert(ctx, &a)
	_, _ = repos.Reviews.Insert(ctx, &b)

	res, err := repos.Reviews.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.DeletedCount)
	res, err = repos.Reviews.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, res.DeletedCount)

	left, err := repos.Reviews.List(ctx, domain.ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "b", left[0].Comment)
}

func TestConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	repos := mem.Repos()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := domain.WishlistEntry{PropertyID: "p", UserEmail: "u@x.com"}
			_, _ = repos.Wishlist.Insert(ctx, &w)
			_, _ = repos.Wishlist.ListByUser(ctx, "u@x.com")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, mem.Count("wishlist"))
}

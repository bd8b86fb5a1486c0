package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate_hub/internal/app"
	"estate_hub/internal/domain"
	"estate_hub/internal/storage/memory"
)

func TestWishlist_AddOnce(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := app.NewWishlistService(mem.Repos().Wishlist)

	_, created, err := svc.Add(ctx, domain.WishlistEntry{PropertyID: "p1", UserEmail: "b@x.com", Title: "Lake house"})
	require.NoError(t, err)
	assert.True(t, created)

	// the legacy field names the same user
	_, created, err = svc.Add(ctx, domain.WishlistEntry{PropertyID: "p1", Email: "b@x.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, mem.Count("wishlist"))
}

func TestWishlist_LegacyEntriesListed(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	svc := app.NewWishlistService(repos.Wishlist)

	_, err := repos.Wishlist.Insert(ctx, &domain.WishlistEntry{PropertyID: "old", Email: "b@x.com"})
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, domain.WishlistEntry{PropertyID: "new", Email: "b@x.com"})
	require.NoError(t, err)

	out, err := svc.ListByUser(ctx, "b@x.com")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b@x.com", out[1].UserEmail, "new entries are stored under userEmail")
	assert.Empty(t, out[1].Email)
}

func TestWishlist_Validation(t *testing.T) {
	mem := memory.New()
	svc := app.NewWishlistService(mem.Repos().Wishlist)

	_, _, err := svc.Add(context.Background(), domain.WishlistEntry{})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"propertyId", "userEmail"}, ve.Fields)
	assert.Zero(t, mem.Count("wishlist"))
}

func TestWishlist_Remove(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := app.NewWishlistService(mem.Repos().Wishlist)
	res, _, err := svc.Add(ctx, domain.WishlistEntry{PropertyID: "p1", UserEmail: "b@x.com"})
	require.NoError(t, err)

	del, err := svc.Remove(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)

	_, err = svc.Remove(ctx, res.InsertedID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

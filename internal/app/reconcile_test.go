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

func TestReconcile_RepairsHalfDoneCascades(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()

	// a fraud user whose listings were never flagged
	u := domain.User{Email: "crook@x.com", Status: domain.UserStatusFraud}
	ures, err := repos.Users.Insert(ctx, &u)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		p := validProperty()
		p.AgentID = ures.InsertedID.Hex()
		p.VerificationStatus = domain.VerificationVerified
		_, err := repos.Properties.Insert(ctx, &p)
		require.NoError(t, err)
	}

	// one accepted offer with pending siblings
	pid := mustID(t, "64b7f0c2a1b2c3d4e5f60718")
	acc := domain.Offer{PropertyID: pid, Status: domain.OfferAccepted}
	_, err = repos.Offers.Insert(ctx, &acc)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		o := domain.Offer{PropertyID: pid, Status: domain.OfferPending}
		_, err := repos.Offers.Insert(ctx, &o)
		require.NoError(t, err)
	}
	bought := domain.Offer{PropertyID: pid, Status: domain.OfferBought}
	_, err = repos.Offers.Insert(ctx, &bought)
	require.NoError(t, err)

	// a property with two accepted offers is left alone
	conflict := mustID(t, "64b7f0c2a1b2c3d4e5f60719")
	for i := 0; i < 2; i++ {
		o := domain.Offer{PropertyID: conflict, Status: domain.OfferAccepted}
		_, err := repos.Offers.Insert(ctx, &o)
		require.NoError(t, err)
	}
	waiting := domain.Offer{PropertyID: conflict, Status: domain.OfferPending}
	_, err = repos.Offers.Insert(ctx, &waiting)
	require.NoError(t, err)

	svc := app.NewReconcileService(repos, nil, 2)
	rep, err := svc.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.FraudUsers)
	assert.EqualValues(t, 2, rep.ListingsFlagged)
	assert.Equal(t, 3, rep.AcceptedOffers)
	assert.EqualValues(t, 2, rep.SiblingsRejected)
	assert.Equal(t, []domain.Offer{}, filterOffers(t, repos, domain.OfferFilter{PropertyID: pid, Status: domain.OfferPending}))
	assert.Len(t, filterOffers(t, repos, domain.OfferFilter{PropertyID: pid, Status: domain.OfferBought}), 1)
	assert.Equal(t, []domain.Offer{waiting}, filterOffers(t, repos, domain.OfferFilter{PropertyID: conflict, Status: domain.OfferPending}))
	require.Len(t, rep.Conflicts, 1)
	assert.Equal(t, conflict, rep.Conflicts[0])
	assert.Zero(t, rep.Failures)

	// second run has nothing left to change
	rep, err = svc.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, rep.ListingsFlagged)
	assert.Zero(t, rep.SiblingsRejected)
}

func filterOffers(t *testing.T, repos domain.Store, f domain.OfferFilter) []domain.Offer {
	t.Helper()
	out, err := repos.Offers.List(context.Background(), f)
	require.NoError(t, err)
	return out
}

func TestReconcile_EvictsRepairedListings(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	cache := &fakeCache{}
	props := app.NewPropertyService(repos.Properties, cache, 0)

	u := domain.User{Email: "crook@x.com", Status: domain.UserStatusFraud}
	ures, err := repos.Users.Insert(ctx, &u)
	require.NoError(t, err)
	p := validProperty()
	p.AgentID = ures.InsertedID.Hex()
	p.VerificationStatus = domain.VerificationVerified
	pres, err := repos.Properties.Insert(ctx, &p)
	require.NoError(t, err)

	// the API has the pre-repair listing cached
	got, err := props.Get(ctx, pres.InsertedID)
	require.NoError(t, err)
	require.Equal(t, domain.VerificationVerified, got.VerificationStatus)

	_, err = app.NewReconcileService(repos, cache, 1).Run(ctx)
	require.NoError(t, err)
	assert.Contains(t, cache.delled, "property:"+pres.InsertedID.Hex())

	got, err = props.Get(ctx, pres.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationFraud, got.VerificationStatus)
}

package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate_hub/internal/app"
	"estate_hub/internal/domain"
	"estate_hub/internal/storage/memory"
)

func TestRegister_Idempotent(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := app.NewUserService(mem.Repos(), nil, nil, 0)

	res, created, err := svc.Register(ctx, domain.User{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, res.Acknowledged)
	assert.False(t, res.InsertedID.IsZero())

	_, created, err = svc.Register(ctx, domain.User{Email: "a@x.com", Name: "Other"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, mem.Count("users"))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "A", users[0].Name)
	assert.False(t, users[0].CreatedAt.IsZero())
}

func TestRegister_RequiresEmail(t *testing.T) {
	mem := memory.New()
	svc := app.NewUserService(mem.Repos(), nil, nil, 0)

	_, _, err := svc.Register(context.Background(), domain.User{Name: "nobody"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"email"}, ve.Fields)
	assert.Zero(t, mem.Count("users"))
}

func TestRole(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	cache := &fakeCache{}
	svc := app.NewUserService(mem.Repos(), nil, cache, 0)

	_, err := svc.Role(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	res, _, err := svc.Register(ctx, domain.User{Email: "agent@x.com", Role: domain.RoleAgent})
	require.NoError(t, err)

	role, err := svc.Role(ctx, "agent@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, role)

	// second read is served from the cache
	_, err = svc.Role(ctx, "agent@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	_, err = svc.SetRole(ctx, res.InsertedID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Contains(t, cache.delled, "role:agent@x.com")

	role, err = svc.Role(ctx, "agent@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := app.NewUserService(mem.Repos(), nil, nil, 0)

	_, err := svc.SetRole(ctx, mustID(t, "64b7f0c2a1b2c3d4e5f60718"), "")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	// unknown ids are not an error; the counts say nothing matched
	res, err := svc.SetRole(ctx, mustID(t, "64b7f0c2a1b2c3d4e5f60718"), domain.RoleAgent)
	require.NoError(t, err)
	assert.Zero(t, res.MatchedCount)
}

func TestFlagFraud_Cascade(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	repos := mem.Repos()
	cache := &fakeCache{}
	users := app.NewUserService(repos, nil, cache, 0)
	props := app.NewPropertyService(repos.Properties, cache, 0)

	u, _, err := users.Register(ctx, domain.User{Email: "crook@x.com", Role: domain.RoleAgent})
	require.NoError(t, err)
	agentID := u.InsertedID.Hex()

	var ids []string
	for i := 0; i < 3; i++ {
		p := validProperty()
		p.AgentID = agentID
		res, err := props.Create(ctx, p)
		require.NoError(t, err)
		ids = append(ids, res.InsertedID.Hex())
	}
	other := validProperty()
	other.AgentID = "64b7f0c2a1b2c3d4e5f60718"
	_, err = props.Create(ctx, other)
	require.NoError(t, err)

	// warm the cache so the cascade has something to evict
	_, err = props.Get(ctx, mustID(t, ids[0]))
	require.NoError(t, err)

	out, err := users.FlagFraud(ctx, u.InsertedID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.User.ModifiedCount)
	assert.EqualValues(t, 3, out.Properties.ModifiedCount)
	assert.Contains(t, cache.delled, "property:"+ids[0])

	flagged, err := repos.Properties.List(ctx, domain.PropertyFilter{VerificationStatus: domain.VerificationFraud})
	require.NoError(t, err)
	assert.Len(t, flagged, 3)

	got, err := props.Get(ctx, mustID(t, ids[0]))
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationFraud, got.VerificationStatus)

	stored, err := repos.Users.FindByID(ctx, u.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusFraud, stored.Status)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		svc := app.NewUserService(memory.New().Repos(), nil, nil, 0)
		_, err := svc.Delete(ctx, mustID(t, "64b7f0c2a1b2c3d4e5f60718"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("identity deleted", func(t *testing.T) {
		mem := memory.New()
		idp := &fakeIdentity{uids: map[string]string{"a@x.com": "uid-1"}}
		svc := app.NewUserService(mem.Repos(), idp, nil, 0)
		res, _, err := svc.Register(ctx, domain.User{Email: "a@x.com"})
		require.NoError(t, err)

		out, err := svc.Delete(ctx, res.InsertedID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, out.Store.DeletedCount)
		assert.True(t, out.Identity.Attempted)
		assert.True(t, out.Identity.Deleted)
		assert.Equal(t, []string{"uid-1"}, idp.deleted)
		assert.Zero(t, mem.Count("users"))
	})

	t.Run("identity failure is reported, not returned", func(t *testing.T) {
		mem := memory.New()
		idp := &fakeIdentity{uids: map[string]string{"a@x.com": "uid-1"}, deleteErr: errors.New("quota exceeded")}
		svc := app.NewUserService(mem.Repos(), idp, nil, 0)
		res, _, err := svc.Register(ctx, domain.User{Email: "a@x.com"})
		require.NoError(t, err)

		out, err := svc.Delete(ctx, res.InsertedID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, out.Store.DeletedCount)
		assert.False(t, out.Identity.Deleted)
		assert.Contains(t, out.Identity.Error, "quota exceeded")
		assert.Zero(t, mem.Count("users"))
	})

	t.Run("no identity provider", func(t *testing.T) {
		mem := memory.New()
		svc := app.NewUserService(mem.Repos(), nil, nil, 0)
		res, _, err := svc.Register(ctx, domain.User{Email: "a@x.com"})
		require.NoError(t, err)

		out, err := svc.Delete(ctx, res.InsertedID)
		require.NoError(t, err)
		assert.False(t, out.Identity.Attempted)
	})
}

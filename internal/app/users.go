package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/domain"
)

type UserService struct {
	users      domain.UserRepository
	properties domain.PropertyRepository
	identity   domain.IdentityProvider
	cache      readCache
}

// NewUserService wires the user operations. identity and cache may be nil.
func NewUserService(store domain.Store, idp domain.IdentityProvider, cache domain.Cache, ttl time.Duration) *UserService {
	return &UserService{
		users:      store.Users,
		properties: store.Properties,
		identity:   idp,
		cache:      readCache{c: cache, ttl: ttl},
	}
}

// Register inserts u unless a user with the same email exists. created is
// false for the existing-user case, which is not an error.
func (s *UserService) Register(ctx context.Context, u domain.User) (res domain.InsertResult, created bool, err error) {
	if err := requireFields(u); err != nil {
		return res, false, err
	}
	if _, err := s.users.FindByEmail(ctx, u.Email); err == nil {
		return res, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return res, false, err
	}
	u.ID = primitive.NilObjectID
	u.CreatedAt = utcNow()
	res, err = s.users.Insert(ctx, &u)
	if err != nil {
		return res, false, err
	}
	return res, true, nil
}

func (s *UserService) Role(ctx context.Context, email string) (string, error) {
	key := roleKey(email)
	var role string
	if s.cache.get(ctx, key, &role) {
		return role, nil
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	s.cache.set(ctx, key, u.Role)
	return u.Role, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// SetRole updates without checking that id exists; the result's counts say
// whether anything matched.
func (s *UserService) SetRole(ctx context.Context, id primitive.ObjectID, role string) (domain.UpdateResult, error) {
	if role == "" {
		return domain.UpdateResult{}, &domain.ValidationError{Fields: []string{"role"}}
	}
	res, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return res, err
	}
	if res.MatchedCount > 0 {
		s.forgetRole(ctx, id)
	}
	return res, nil
}

// FlagFraud marks the user fraud, then every property listed under that
// user. The writes are sequential; if the second fails the user stays
// flagged and the returned error says so.
func (s *UserService) FlagFraud(ctx context.Context, id primitive.ObjectID) (domain.FraudFlag, error) {
	var out domain.FraudFlag
	res, err := s.users.SetStatus(ctx, id, domain.UserStatusFraud)
	if err != nil {
		return out, err
	}
	out.User = res

	agentID := id.Hex()
	var listed []domain.Property
	if s.cache.c != nil {
		if listed, err = s.properties.List(ctx, domain.PropertyFilter{AgentID: agentID}); err != nil {
			log.Warn().Err(err).Str("agent", agentID).Msg("listing lookup for cache eviction failed")
		}
	}

	res, err = s.properties.SetVerificationByAgent(ctx, agentID, domain.VerificationFraud)
	if err != nil {
		return out, fmt.Errorf("user %s flagged, listings not flagged: %w", agentID, err)
	}
	out.Properties = res

	keys := make([]string, 0, len(listed))
	for _, p := range listed {
		keys = append(keys, propertyKey(p.ID))
	}
	s.cache.del(ctx, keys...)
	log.Debug().Str("user", agentID).Int64("listings", res.ModifiedCount).Msg("fraud cascade applied")
	return out, nil
}

// Delete removes the store record first and then the identity account.
// Identity failures are logged and reported in the outcome only.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) (domain.UserDeletion, error) {
	var out domain.UserDeletion
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return out, err
	}
	out.Store, err = s.users.Delete(ctx, id)
	if err != nil {
		return out, err
	}
	s.cache.del(ctx, roleKey(u.Email))

	if s.identity == nil || u.Email == "" {
		return out, nil
	}
	out.Identity.Attempted = true
	uid, err := s.identity.LookupUIDByEmail(ctx, u.Email)
	if err == nil {
		err = s.identity.DeleteAccount(ctx, uid)
	}
	if err != nil {
		log.Warn().Err(err).Str("email", u.Email).Msg("identity account deletion failed; store record already removed")
		out.Identity.Error = err.Error()
		return out, nil
	}
	out.Identity.Deleted = true
	return out, nil
}

func (s *UserService) forgetRole(ctx context.Context, id primitive.ObjectID) {
	if s.cache.c == nil {
		return
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return
	}
	s.cache.del(ctx, roleKey(u.Email))
}

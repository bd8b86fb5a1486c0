package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/domain"
)

// readCache wraps an optional domain.Cache. Cache failures never fail a
// request; they are logged and the store is used instead.
type readCache struct {
	c   domain.Cache
	ttl time.Duration
}

func (rc readCache) get(ctx context.Context, key string, dst any) bool {
	if rc.c == nil {
		return false
	}
	ok, err := rc.c.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	return ok
}

func (rc readCache) set(ctx context.Context, key string, v any) {
	if rc.c == nil {
		return
	}
	if err := rc.c.Set(ctx, key, v, int(rc.ttl.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (rc readCache) del(ctx context.Context, keys ...string) {
	if rc.c == nil {
		return
	}
	for _, k := range keys {
		if err := rc.c.Del(ctx, k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("cache del failed")
		}
	}
}

func propertyKey(id primitive.ObjectID) string { return "property:" + id.Hex() }
func roleKey(email string) string { return "role:" + email }

func utcNow() time.Time { return time.Now().UTC() }

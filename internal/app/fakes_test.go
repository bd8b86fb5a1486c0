package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// fakeCache round-trips values through JSON like the redis adapter does.
type fakeCache struct {
	mu     sync.Mutex
	store  map[string][]byte
	hits   int
	sets   int
	delled []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.delled = append(c.delled, key)
	return nil
}

// fakeIdentity records which accounts were deleted.
type fakeIdentity struct {
	uids      map[string]string
	deleteErr error
	deleted   []string
}

func (f *fakeIdentity) LookupUIDByEmail(ctx context.Context, email string) (string, error) {
	uid, ok := f.uids[email]
	if !ok {
		return "", domain.ErrNotFound
	}
	return uid, nil
}

func (f *fakeIdentity) DeleteAccount(ctx context.Context, uid string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, uid)
	return nil
}

// countingProperties counts store reads to observe the cache.
type countingProperties struct {
	domain.PropertyRepository
	finds int
}

func (c *countingProperties) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Property, error) {
	c.finds++
	return c.PropertyRepository.FindByID(ctx, id)
}

// failingOffers breaks the sibling rejection write.
type failingOffers struct {
	domain.OfferRepository
}

func (f failingOffers) SetStatusWhere(ctx context.Context, _ domain.OfferFilter, _ string) (domain.UpdateResult, error) {
	return domain.UpdateResult{}, errors.New("write concern timeout")
}

func mustID(t interface{ Fatalf(string, ...any) }, hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		t.Fatalf("bad id %q: %v", hex, err)
	}
	return id
}

func validProperty() domain.Property {
	return domain.Property{
		Title:      "Lake house",
		Location:   "Sylhet",
		Image:      "https://img.example/lake.jpg",
		AgentName:  "Rahim",
		AgentEmail: "rahim@agency.com",
		PriceMin:   ptr(120000.0),
		PriceMax:   ptr(150000.0),
	}
}

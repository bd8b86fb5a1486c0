package app

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/domain"
)

type PropertyService struct {
	repo  domain.PropertyRepository
	cache readCache
}

func NewPropertyService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *PropertyService {
	return &PropertyService{repo: r, cache: readCache{c: c, ttl: ttl}}
}

// Create validates the required listing fields and stores the property as
// pending unless the client chose a status.
func (s *PropertyService) Create(ctx context.Context, p domain.Property) (domain.InsertResult, error) {
	if err := requireFields(p); err != nil {
		return domain.InsertResult{}, err
	}
	if p.VerificationStatus == "" {
		p.VerificationStatus = domain.VerificationPending
	}
	p.ID = primitive.NilObjectID
	p.CreatedAt = utcNow()
	return s.repo.Insert(ctx, &p)
}

func (s *PropertyService) List(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	return s.repo.List(ctx, f)
}

func (s *PropertyService) Get(ctx context.Context, id primitive.ObjectID) (domain.Property, error) {
	key := propertyKey(id)
	var p domain.Property
	if s.cache.get(ctx, key, &p) {
		return p, nil
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	s.cache.set(ctx, key, p)
	return p, nil
}

// Update merges patch into the stored property. Nothing modified is
// reported as domain.ErrNotFound alongside the store result.
func (s *PropertyService) Update(ctx context.Context, id primitive.ObjectID, patch domain.PropertyPatch) (domain.UpdateResult, error) {
	if len(patch.Fields()) == 0 {
		return domain.UpdateResult{}, fmt.Errorf("%w: no updatable fields in body", domain.ErrBadRequest)
	}
	res, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return res, err
	}
	s.cache.del(ctx, propertyKey(id))
	if res.ModifiedCount == 0 {
		return res, domain.ErrNotFound
	}
	return res, nil
}

func (s *PropertyService) Delete(ctx context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return res, err
	}
	s.cache.del(ctx, propertyKey(id))
	if res.DeletedCount == 0 {
		return res, domain.ErrNotFound
	}
	return res, nil
}

// Verify and Reject return the raw result even when nothing matched.
func (s *PropertyService) Verify(ctx context.Context, id primitive.ObjectID) (domain.UpdateResult, error) {
	return s.setVerification(ctx, id, domain.VerificationVerified)
}

func (s *PropertyService) Reject(ctx context.Context, id primitive.ObjectID) (domain.UpdateResult, error) {
	return s.setVerification(ctx, id, domain.VerificationRejected)
}

func (s *PropertyService) setVerification(ctx context.Context, id primitive.ObjectID, status string) (domain.UpdateResult, error) {
	res, err := s.repo.SetVerification(ctx, id, status)
	if err != nil {
		return res, err
	}
	s.cache.del(ctx, propertyKey(id))
	return res, nil
}

package app

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/domain"
)

type WishlistService struct {
	repo domain.WishlistRepository
}

func NewWishlistService(r domain.WishlistRepository) *WishlistService {
	return &WishlistService{repo: r}
}

// Add stores the entry unless the user already saved the property. The
// user may be given as userEmail or the older email field; new entries are
// always written under userEmail.
func (s *WishlistService) Add(ctx context.Context, w domain.WishlistEntry) (res domain.InsertResult, created bool, err error) {
	owner := w.Owner()
	var missing []string
	if w.PropertyID == "" {
		missing = append(missing, "propertyId")
	}
	if owner == "" {
		missing = append(missing, "userEmail")
	}
	if len(missing) > 0 {
		return res, false, &domain.ValidationError{Fields: missing}
	}

	if _, err := s.repo.Find(ctx, w.PropertyID, owner); err == nil {
		return res, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return res, false, err
	}

	w.ID = primitive.NilObjectID
	w.UserEmail, w.Email = owner, ""
	w.AddedAt = utcNow()
	res, err = s.repo.Insert(ctx, &w)
	if err != nil {
		return res, false, err
	}
	return res, true, nil
}

func (s *WishlistService) ListByUser(ctx context.Context, email string) ([]domain.WishlistEntry, error) {
	return s.repo.ListByUser(ctx, email)
}

func (s *WishlistService) Remove(ctx context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return res, err
	}
	if res.DeletedCount == 0 {
		return res, domain.ErrNotFound
	}
	return res, nil
}

package app

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/domain"
)

type ReviewService struct {
	repo domain.ReviewRepository
}

func NewReviewService(r domain.ReviewRepository) *ReviewService {
	return &ReviewService{repo: r}
}

// Create stamps the review with the server's clock, replacing any client time.
func (s *ReviewService) Create(ctx context.Context, r domain.Review) (domain.InsertResult, error) {
	r.ID = primitive.NilObjectID
	r.Time = utcNow()
	return s.repo.Insert(ctx, &r)
}

// List picks one mode: latest > 0 wins over email, and no criteria
// returns every review.
func (s *ReviewService) List(ctx context.Context, latest int, email string) ([]domain.Review, error) {
	switch {
	case latest > 0:
		return s.repo.List(ctx, domain.ReviewFilter{Latest: latest})
	case email != "":
		return s.repo.List(ctx, domain.ReviewFilter{UserEmail: email})
	default:
		return s.repo.List(ctx, domain.ReviewFilter{})
	}
}

func (s *ReviewService) ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	return s.repo.List(ctx, domain.ReviewFilter{PropertyID: propertyID})
}

func (s *ReviewService) Delete(ctx context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	return s.repo.Delete(ctx, id)
}

package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lookups by id or key return ErrNotFound when no document matches.

type UserRepository interface {
	Insert(ctx context.Context, u *User) (InsertResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	ListByStatus(ctx context.Context, status string) ([]User, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role string) (UpdateResult, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (DeleteResult, error)
}

type PropertyRepository interface {
	Insert(ctx context.Context, p *Property) (InsertResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (Property, error)
	List(ctx context.Context, f PropertyFilter) ([]Property, error)
	Update(ctx context.Context, id primitive.ObjectID, patch PropertyPatch) (UpdateResult, error)
	SetVerification(ctx context.Context, id primitive.ObjectID, status string) (UpdateResult, error)
	SetVerificationByAgent(ctx context.Context, agentID, status string) (UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (DeleteResult, error)
}

type WishlistRepository interface {
	Insert(ctx context.Context, w *WishlistEntry) (InsertResult, error)
	// Find matches the property and either user field.
	Find(ctx context.Context, propertyID, userEmail string) (WishlistEntry, error)
	ListByUser(ctx context.Context, email string) ([]WishlistEntry, error)
	Delete(ctx context.Context, id primitive.ObjectID) (DeleteResult, error)
}

type ReviewRepository interface {
	Insert(ctx context.Context, r *Review) (InsertResult, error)
	List(ctx context.Context, f ReviewFilter) ([]Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) (DeleteResult, error)
}

type OfferRepository interface {
	Insert(ctx context.Context, o *Offer) (InsertResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (Offer, error)
	List(ctx context.Context, f OfferFilter) ([]Offer, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (UpdateResult, error)
	SetStatusWhere(ctx context.Context, f OfferFilter, status string) (UpdateResult, error)
}

// IdentityProvider is the external auth account store.
type IdentityProvider interface {
	LookupUIDByEmail(ctx context.Context, email string) (string, error)
	DeleteAccount(ctx context.Context, uid string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Store groups the repositories of one backend.
type Store struct {
	Users      UserRepository
	Properties PropertyRepository
	Wishlist   WishlistRepository
	Reviews    ReviewRepository
	Offers     OfferRepository
}

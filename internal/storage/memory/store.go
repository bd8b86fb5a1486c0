package memory

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/domain"
)

type Store struct {
	users      *table[domain.User]
	properties *table[domain.Property]
	wishlist   *table[domain.WishlistEntry]
	reviews    *table[domain.Review]
	offers     *table[domain.Offer]
}

func New() *Store {
	return &Store{
		users:      newTable(func(u *domain.User) *primitive.ObjectID { return &u.ID }),
		properties: newTable(func(p *domain.Property) *primitive.ObjectID { return &p.ID }),
		wishlist:   newTable(func(w *domain.WishlistEntry) *primitive.ObjectID { return &w.ID }),
		reviews:    newTable(func(r *domain.Review) *primitive.ObjectID { return &r.ID }),
		offers:     newTable(func(o *domain.Offer) *primitive.ObjectID { return &o.ID }),
	}
}

// Repos exposes the store through the domain ports.
func (s *Store) Repos() domain.Store {
	return domain.Store{
		Users:      UserRepo{s.users},
		Properties: PropertyRepo{s.properties},
		Wishlist:   WishlistRepo{s.wishlist},
		Reviews:    ReviewRepo{s.reviews},
		Offers:     OfferRepo{s.offers},
	}
}

// Count returns the number of documents in a collection, for tests.
func (s *Store) Count(collection string) int {
	switch collection {
	case "users":
		return s.users.len()
	case "properties":
		return s.properties.len()
	case "wishlist":
		return s.wishlist.len()
	case "reviews":
		return s.reviews.len()
	case "offers":
		return s.offers.len()
	}
	return 0
}

// ---- users ----

type UserRepo struct{ t *table[domain.User] }

func (r UserRepo) Insert(_ context.Context, u *domain.User) (domain.InsertResult, error) {
	return r.t.insert(u), nil
}

func (r UserRepo) FindByID(_ context.Context, id primitive.ObjectID) (domain.User, error) {
	return r.t.findByID(id)
}

func (r UserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	return r.t.findOne(func(u *domain.User) bool { return u.Email == email })
}

func (r UserRepo) List(_ context.Context) ([]domain.User, error) {
	return r.t.findMany(nil), nil
}

func (r UserRepo) ListByStatus(_ context.Context, status string) ([]domain.User, error) {
	return r.t.findMany(func(u *domain.User) bool { return u.Status == status }), nil
}

func (r UserRepo) SetRole(_ context.Context, id primitive.ObjectID, role string) (domain.UpdateResult, error) {
	return r.t.updateByID(id, func(u *domain.User) bool { return setString(&u.Role, role) }), nil
}

func (r UserRepo) SetStatus(_ context.Context, id primitive.ObjectID, status string) (domain.UpdateResult, error) {
	return r.t.updateByID(id, func(u *domain.User) bool { return setString(&u.Status, status) }), nil
}

func (r UserRepo) Delete(_ context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	return r.t.deleteByID(id), nil
}

// ---- properties ----

type PropertyRepo struct{ t *table[domain.Property] }

func (r PropertyRepo) Insert(_ context.Context, p *domain.Property) (domain.InsertResult, error) {
	return r.t.insert(p), nil
}

func (r PropertyRepo) FindByID(_ context.Context, id primitive.ObjectID) (domain.Property, error) {
	return r.t.findByID(id)
}

func (r PropertyRepo) List(_ context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	return r.t.findMany(func(p *domain.Property) bool {
		return (f.AgentEmail == "" || p.AgentEmail == f.AgentEmail) &&
			(f.AgentID == "" || p.AgentID == f.AgentID) &&
			(f.VerificationStatus == "" || p.VerificationStatus == f.VerificationStatus)
	}), nil
}

func (r PropertyRepo) Update(_ context.Context, id primitive.ObjectID, patch domain.PropertyPatch) (domain.UpdateResult, error) {
	return r.t.updateByID(id, patch.Apply), nil
}

func (r PropertyRepo) SetVerification(_ context.Context, id primitive.ObjectID, status string) (domain.UpdateResult, error) {
	return r.t.updateByID(id, func(p *domain.Property) bool { return setString(&p.VerificationStatus, status) }), nil
}

func (r PropertyRepo) SetVerificationByAgent(_ context.Context, agentID, status string) (domain.UpdateResult, error) {
	return r.t.update(
		func(p *domain.Property) bool { return p.AgentID == agentID },
		false,
		func(p *domain.Property) bool { return setString(&p.VerificationStatus, status) },
	), nil
}

func (r PropertyRepo) Delete(_ context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	return r.t.deleteByID(id), nil
}

// ---- wishlist ----

type WishlistRepo struct{ t *table[domain.WishlistEntry] }

func (r WishlistRepo) Insert(_ context.Context, w *domain.WishlistEntry) (domain.InsertResult, error) {
	return r.t.insert(w), nil
}

func (r WishlistRepo) Find(_ context.Context, propertyID, userEmail string) (domain.WishlistEntry, error) {
	return r.t.findOne(func(w *domain.WishlistEntry) bool {
		return w.PropertyID == propertyID && (w.UserEmail == userEmail || w.Email == userEmail)
	})
}

func (r WishlistRepo) ListByUser(_ context.Context, email string) ([]domain.WishlistEntry, error) {
	return r.t.findMany(func(w *domain.WishlistEntry) bool {
		return w.UserEmail == email || w.Email == email
	}), nil
}

func (r WishlistRepo) Delete(_ context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	return r.t.deleteByID(id), nil
}

// ---- reviews ----

type ReviewRepo struct{ t *table[domain.Review] }

func (r ReviewRepo) Insert(_ context.Context, rv *domain.Review) (domain.InsertResult, error) {
	return r.t.insert(rv), nil
}

func (r ReviewRepo) List(_ context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	if f.Latest > 0 {
		all := r.t.findMany(nil)
		sort.SliceStable(all, func(i, j int) bool { return all[i].Time.After(all[j].Time) })
		if len(all) > f.Latest {
			all = all[:f.Latest]
		}
		return all, nil
	}
	return r.t.findMany(func(rv *domain.Review) bool {
		return (f.PropertyID == "" || rv.PropertyID == f.PropertyID) &&
			(f.UserEmail == "" || rv.UserEmail == f.UserEmail)
	}), nil
}

func (r ReviewRepo) Delete(_ context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	return r.t.deleteByID(id), nil
}

// ---- offers ----

type OfferRepo struct{ t *table[domain.Offer] }

func (r OfferRepo) Insert(_ context.Context, o *domain.Offer) (domain.InsertResult, error) {
	return r.t.insert(o), nil
}

func (r OfferRepo) FindByID(_ context.Context, id primitive.ObjectID) (domain.Offer, error) {
	return r.t.findByID(id)
}

func (r OfferRepo) List(_ context.Context, f domain.OfferFilter) ([]domain.Offer, error) {
	return r.t.findMany(offerMatcher(f)), nil
}

func (r OfferRepo) SetStatus(_ context.Context, id primitive.ObjectID, status string) (domain.UpdateResult, error) {
	return r.t.updateByID(id, func(o *domain.Offer) bool { return setString(&o.Status, status) }), nil
}

func (r OfferRepo) SetStatusWhere(_ context.Context, f domain.OfferFilter, status string) (domain.UpdateResult, error) {
	return r.t.update(offerMatcher(f), false, func(o *domain.Offer) bool { return setString(&o.Status, status) }), nil
}

func offerMatcher(f domain.OfferFilter) func(*domain.Offer) bool {
	var ids map[primitive.ObjectID]struct{}
	if f.PropertyIDs != nil {
		ids = make(map[primitive.ObjectID]struct{}, len(f.PropertyIDs))
		for _, id := range f.PropertyIDs {
			ids[id] = struct{}{}
		}
	}
	return func(o *domain.Offer) bool {
		if f.BuyerEmail != "" && o.BuyerEmail != f.BuyerEmail {
			return false
		}
		if f.AgentEmail != "" && o.AgentEmail != f.AgentEmail {
			return false
		}
		if f.AgentID != "" && o.AgentID != f.AgentID {
			return false
		}
		if f.Status != "" && o.Status != f.Status {
			return false
		}
		if !f.PropertyID.IsZero() && o.PropertyID != f.PropertyID {
			return false
		}
		if !f.ExcludeID.IsZero() && o.ID == f.ExcludeID {
			return false
		}
		if ids != nil {
			if _, ok := ids[o.PropertyID]; !ok {
				return false
			}
		}
		return true
	}
}

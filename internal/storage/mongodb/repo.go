package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"estate_hub/internal/domain"
)

type Store struct {
	db   *mongo.Database
	cols Collections
}

func New(db *mongo.Database, cols Collections) *Store { return &Store{db: db, cols: cols} }

func (s *Store) Repos() domain.Store {
	return domain.Store{
		Users:      UserRepo{s.db.Collection(s.cols.Users)},
		Properties: PropertyRepo{s.db.Collection(s.cols.Properties)},
		Wishlist:   WishlistRepo{s.db.Collection(s.cols.Wishlist)},
		Reviews:    ReviewRepo{s.db.Collection(s.cols.Reviews)},
		Offers:     OfferRepo{s.db.Collection(s.cols.Offers)},
	}
}

// ---- generic helpers ----

func insertOne(ctx context.Context, c *mongo.Collection, id *primitive.ObjectID, doc any) (domain.InsertResult, error) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
	if _, err := c.InsertOne(ctx, doc); err != nil {
		return domain.InsertResult{}, err
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: *id}, nil
}

func findOne[T any](ctx context.Context, c *mongo.Collection, filter any) (T, error) {
	var out T
	err := c.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, domain.ErrNotFound
	}
	return out, err
}

func findMany[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func updateOne(ctx context.Context, c *mongo.Collection, filter any, set bson.M) (domain.UpdateResult, error) {
	r, err := c.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return domain.UpdateResult{}, err
	}
	return toUpdateResult(r), nil
}

func updateMany(ctx context.Context, c *mongo.Collection, filter any, set bson.M) (domain.UpdateResult, error) {
	r, err := c.UpdateMany(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return domain.UpdateResult{}, err
	}
	return toUpdateResult(r), nil
}

func deleteOne(ctx context.Context, c *mongo.Collection, filter any) (domain.DeleteResult, error) {
	r, err := c.DeleteOne(ctx, filter)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: r.DeletedCount}, nil
}

func toUpdateResult(r *mongo.UpdateResult) domain.UpdateResult {
	return domain.UpdateResult{Acknowledged: true, MatchedCount: r.MatchedCount, ModifiedCount: r.ModifiedCount}
}

func byID(id primitive.ObjectID) bson.M { return bson.M{"_id": id} }

// ---- users ----

type UserRepo struct{ c *mongo.Collection }

func (r UserRepo) Insert(ctx context.Context, u *domain.User) (domain.InsertResult, error) {
	return insertOne(ctx, r.c, &u.ID, u)
}

func (r UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (domain.User, error) {
	return findOne[domain.User](ctx, r.c, byID(id))
}

func (r UserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return findOne[domain.User](ctx, r.c, bson.M{"email": email})
}

func (r UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return findMany[domain.User](ctx, r.c, bson.M{})
}

func (r UserRepo) ListByStatus(ctx context.Context, status string) ([]domain.User, error) {
	return findMany[domain.User](ctx, r.c, bson.M{"status": status})
}

func (r UserRepo) SetRole(ctx context.Context, id primitive.ObjectID, role string) (domain.UpdateResult, error) {
	return updateOne(ctx, r.c, byID(id), bson.M{"role": role})
}

func (r UserRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (domain.UpdateResult, error) {
	return updateOne(ctx, r.c, byID(id), bson.M{"status": status})
}

func (r UserRepo) Delete(ctx context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	return deleteOne(ctx, r.c, byID(id))
}

// ---- properties ----

type PropertyRepo struct{ c *mongo.Collection }

func (r PropertyRepo) Insert(ctx context.Context, p *domain.Property) (domain.InsertResult, error) {
	return insertOne(ctx, r.c, &p.ID, p)
}

func (r PropertyRepo) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Property, error) {
	return findOne[domain.Property](ctx, r.c, byID(id))
}

func (r PropertyRepo) List(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	q := bson.M{}
	if f.AgentEmail != "" {
		q["agentEmail"] = f.AgentEmail
	}
	if f.AgentID != "" {
		q["agentId"] = f.AgentID
	}
	if f.VerificationStatus != "" {
		q["verificationStatus"] = f.VerificationStatus
	}
	return findMany[domain.Property](ctx, r.c, q)
}

func (r PropertyRepo) Update(ctx context.Context, id primitive.ObjectID, patch domain.PropertyPatch) (domain.UpdateResult, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		// $set with an empty document is rejected by the server
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	return updateOne(ctx, r.c, byID(id), bson.M(fields))
}

func (r PropertyRepo) SetVerification(ctx context.Context, id primitive.ObjectID, status string) (domain.UpdateResult, error) {
	return updateOne(ctx, r.c, byID(id), bson.M{"verificationStatus": status})
}

func (r PropertyRepo) SetVerificationByAgent(ctx context.Context, agentID, status string) (domain.UpdateResult, error) {
	return updateMany(ctx, r.c, bson.M{"agentId": agentID}, bson.M{"verificationStatus": status})
}

func (r PropertyRepo) Delete(ctx context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	return deleteOne(ctx, r.c, byID(id))
}

// ---- wishlist ----

type WishlistRepo struct{ c *mongo.Collection }

func userEmailMatch(email string) bson.A {
	return bson.A{bson.M{"userEmail": email}, bson.M{"email": email}}
}

func (r WishlistRepo) Insert(ctx context.Context, w *domain.WishlistEntry) (domain.InsertResult, error) {
	return insertOne(ctx, r.c, &w.ID, w)
}

func (r WishlistRepo) Find(ctx context.Context, propertyID, userEmail string) (domain.WishlistEntry, error) {
	return findOne[domain.WishlistEntry](ctx, r.c, bson.M{
		"propertyId": propertyID,
		"$or":        userEmailMatch(userEmail),
	})
}

func (r WishlistRepo) ListByUser(ctx context.Context, email string) ([]domain.WishlistEntry, error) {
	return findMany[domain.WishlistEntry](ctx, r.c, bson.M{"$or": userEmailMatch(email)})
}

func (r WishlistRepo) Delete(ctx context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	return deleteOne(ctx, r.c, byID(id))
}

// ---- reviews ----

type ReviewRepo struct{ c *mongo.Collection }

func (r ReviewRepo) Insert(ctx context.Context, rv *domain.Review) (domain.InsertResult, error) {
	return insertOne(ctx, r.c, &rv.ID, rv)
}

func (r ReviewRepo) List(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	if f.Latest > 0 {
		opts := options.Find().
			SetSort(bson.D{{Key: "time", Value: -1}}).
			SetLimit(int64(f.Latest))
		return findMany[domain.Review](ctx, r.c, bson.M{}, opts)
	}
	q := bson.M{}
	if f.PropertyID != "" {
		q["propertyId"] = f.PropertyID
	}
	if f.UserEmail != "" {
		q["userEmail"] = f.UserEmail
	}
	return findMany[domain.Review](ctx, r.c, q)
}

func (r ReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) (domain.DeleteResult, error) {
	return deleteOne(ctx, r.c, byID(id))
}

// ---- offers ----

type OfferRepo struct{ c *mongo.Collection }

func offerQuery(f domain.OfferFilter) bson.M {
	q := bson.M{}
	if f.BuyerEmail != "" {
		q["buyerEmail"] = f.BuyerEmail
	}
	if f.AgentEmail != "" {
		q["agentEmail"] = f.AgentEmail
	}
	if f.AgentID != "" {
		q["agentId"] = f.AgentID
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if !f.PropertyID.IsZero() {
		q["propertyId"] = f.PropertyID
	} else if f.PropertyIDs != nil {
		q["propertyId"] = bson.M{"$in": f.PropertyIDs}
	}
	if !f.ExcludeID.IsZero() {
		q["_id"] = bson.M{"$ne": f.ExcludeID}
	}
	return q
}

func (r OfferRepo) Insert(ctx context.Context, o *domain.Offer) (domain.InsertResult, error) {
	return insertOne(ctx, r.c, &o.ID, o)
}

func (r OfferRepo) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Offer, error) {
	return findOne[domain.Offer](ctx, r.c, byID(id))
}

func (r OfferRepo) List(ctx context.Context, f domain.OfferFilter) ([]domain.Offer, error) {
	return findMany[domain.Offer](ctx, r.c, offerQuery(f))
}

func (r OfferRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (domain.UpdateResult, error) {
	return updateOne(ctx, r.c, byID(id), bson.M{"status": status})
}

func (r OfferRepo) SetStatusWhere(ctx context.Context, f domain.OfferFilter, status string) (domain.UpdateResult, error) {
	return updateMany(ctx, r.c, offerQuery(f), bson.M{"status": status})
}

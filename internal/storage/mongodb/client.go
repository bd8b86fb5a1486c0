// Package mongodb implements the domain repositories on MongoDB.
package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"estate_hub/internal/adapters/observability"
)

// Collections names the collection backing each repository.
type Collections struct {
	Users      string
	Properties string
	Wishlist   string
	Reviews    string
	Offers     string
}

func DefaultCollections() Collections {
	return Collections{
		Users:      "users",
		Properties: "properties",
		Wishlist:   "wishlist",
		Reviews:    "reviews",
		Offers:     "offers",
	}
}

// Connect dials the cluster and pings the primary before returning.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetMonitor(commandMonitor())

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, err
	}
	return c, nil
}

func commandMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			observability.ObserveStore(e.CommandName, "ok", e.Duration)
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			observability.ObserveStore(e.CommandName, "error", e.Duration)
		},
	}
}

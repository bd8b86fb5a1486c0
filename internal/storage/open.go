// Package storage picks the repository backend named in the configuration.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"estate_hub/internal/domain"
	"estate_hub/internal/shared"
	"estate_hub/internal/storage/memory"
	"estate_hub/internal/storage/mongodb"
)

// Open returns the repositories for cfg.StoreDriver and a func releasing
// the connection.
func Open(ctx context.Context, cfg shared.Config) (domain.Store, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Warn().Msg("using the in-memory store; data is lost on exit")
		return memory.New().Repos(), func() {}, nil
	case "mongo", "":
		if cfg.MongoURI == "" {
			return domain.Store{}, nil, errors.New("mongo store selected but no MongoDB address configured")
		}
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return domain.Store{}, nil, fmt.Errorf("connect mongo: %w", err)
		}
		cols := mongodb.Collections{
			Users:      cfg.Collections.Users,
			Properties: cfg.Collections.Properties,
			Wishlist:   cfg.Collections.Wishlist,
			Reviews:    cfg.Collections.Reviews,
			Offers:     cfg.Collections.Offers,
		}
		log.Info().Str("db", cfg.DBName).Msg("mongo connection ok")
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}
		return mongodb.New(client.Database(cfg.DBName), cols).Repos(), closeFn, nil
	default:
		return domain.Store{}, nil, fmt.Errorf("unknown STORE_DRIVER %q (want mongo or memory)", cfg.StoreDriver)
	}
}

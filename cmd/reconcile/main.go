package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"estate_hub/internal/adapters/observability"
	redisad "estate_hub/internal/adapters/redis"
	"estate_hub/internal/app"
	"estate_hub/internal/domain"
	"estate_hub/internal/shared"
	"estate_hub/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("db", cfg.DBName).
		Int("workers", cfg.ReconcileWorkers).
		Msg("reconcile starting")

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store open failed")
	}
	defer closeStore()

	// evict repaired listings from the API's cache
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; cached listings expire by TTL")
		} else {
			cache = rc
			defer rc.Close()
		}
	}

	rep, err := app.NewReconcileService(store, cache, cfg.ReconcileWorkers).Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconcile aborted")
		return
	}

	conflicts := make([]string, 0, len(rep.Conflicts))
	for _, id := range rep.Conflicts {
		conflicts = append(conflicts, id.Hex())
	}
	log.Info().
		Int("fraud_users", rep.FraudUsers).
		Int64("listings_flagged", rep.ListingsFlagged).
		Int("accepted_offers", rep.AcceptedOffers).
		Int64("siblings_rejected", rep.SiblingsRejected).
		Strs("conflicts", conflicts).
		Int("failures", rep.Failures).
		Msg("reconcile completed")
}

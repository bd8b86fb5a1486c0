package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "estate_hub/internal/adapters/http_server"
	"estate_hub/internal/adapters/identity"
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

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// store
	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store open failed")
	}
	defer closeStore()

	// optional deps; interfaces stay nil when disabled
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; running without cache")
		} else {
			cache = rc
			defer rc.Close()
		}
	}
	var idp domain.IdentityProvider
	gw, err := identity.NewFirebase(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredFile, cfg.FirebaseCredJSON, cfg.IdentityRPS)
	switch {
	case err == nil:
		idp = gw
	case errors.Is(err, identity.ErrNotConfigured):
	default:
		log.Warn().Err(err).Msg("firebase init failed; identity accounts will not be deleted")
	}

	// http
	srv := server.New(cfg.CORSOrigins)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Users:      app.NewUserService(store, idp, cache, cfg.CacheTTL),
		Properties: app.NewPropertyService(store.Properties, cache, cfg.CacheTTL),
		Wishlist:   app.NewWishlistService(store.Wishlist),
		Reviews:    app.NewReviewService(store.Reviews),
		Offers:     app.NewOfferService(store.Offers, store.Properties),
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreDriver).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

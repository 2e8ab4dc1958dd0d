// @title        Gari Mobility Admin Dashboard
// @version      1.0
// @description  Session-backed admin dashboard over the Gari Mobility e-bike backend.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/garimobility/admin-dashboard/internal/api"
	"github.com/garimobility/admin-dashboard/internal/api/cookie"
	"github.com/garimobility/admin-dashboard/internal/api/handler"
	"github.com/garimobility/admin-dashboard/internal/core/ports"
	"github.com/garimobility/admin-dashboard/internal/core/service"
	"github.com/garimobility/admin-dashboard/internal/infrastructure/backend"
	"github.com/garimobility/admin-dashboard/internal/infrastructure/db/memory"
	"github.com/garimobility/admin-dashboard/internal/infrastructure/db/mongo"
	"github.com/garimobility/admin-dashboard/internal/infrastructure/db/redis"
	"github.com/garimobility/admin-dashboard/internal/pkg/config"
	"github.com/garimobility/admin-dashboard/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "admin-dashboard",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open session store")
	}
	defer closeStore()

	if cfg.Session.Secret == "" {
		log.Warn().Msg("SESSION_SECRET is empty, sessions will not survive a restart")
	}

	client := backend.New(cfg.Backend.URL, cfg.Backend.Timeout, log)
	sessions := service.NewSessionProvider(store, log)

	var fallbacks *ports.Fallbacks
	if cfg.DemoFallback {
		f := service.DemoFallbacks()
		fallbacks = &f
	}

	e := api.NewRouter(api.Dependencies{
		Log:       log,
		Codec:     cookie.NewCodec(cfg.Session.Secret, cfg.Session.CookieSecure),
		Auth:      service.NewAuthService(client, sessions, cfg.Session.TTL, cfg.Session.RememberTTL, log),
		Sessions:  sessions,
		Backend:   client,
		Dashboard: service.NewDashboardService(log),
		Loans:     service.NewLoanService(log),
		Fallbacks: fallbacks,
		Ready: map[string]handler.Pinger{
			"session_store": store,
			"backend":       client,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Backend.Timeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", cfg.Backend.URL).
			Str("store", cfg.StoreDriver).
			Bool("demo_fallback", cfg.DemoFallback).
			Msg("Starting admin dashboard")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down HTTP server")
	}
	log.Info().Msg("Server shutdown complete")
}

// openStore connects the configured credential store and returns a closer.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.CredentialStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("Using in-memory session store, sessions are lost on restart")
		return memory.NewSessionStore(), func() {}, nil

	case config.StoreRedis:
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("Error closing Redis client")
			}
		}
		return redis.NewSessionStore(rdb), closer, nil

	case config.StoreMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Warn().Err(err).Msg("Error disconnecting MongoDB")
			}
		}
		store := mongo.NewSessionStore(database)
		if err := store.EnsureIndexes(ctx); err != nil {
			closer()
			return nil, nil, err
		}
		return store, closer, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

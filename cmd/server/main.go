package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/carelink/hospital-system/internal/api"
	"github.com/carelink/hospital-system/internal/auth"
	"github.com/carelink/hospital-system/internal/core/ports"
	mongodb "github.com/carelink/hospital-system/internal/infrastructure/db/mongo"
	redisdb "github.com/carelink/hospital-system/internal/infrastructure/db/redis"
	"github.com/carelink/hospital-system/internal/infrastructure/queue"
	"github.com/carelink/hospital-system/internal/pkg/config"
	"github.com/carelink/hospital-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	issuer := auth.NewIssuer(cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Deps{Issuer: issuer, Log: log}

	// Mongo is optional at startup: without it the process runs degraded,
	// serving health and metrics while persistence routes answer 503.
	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Warn().Err(err).Msg("mongodb unavailable, starting degraded")
		} else {
			defer func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := client.Disconnect(disconnectCtx); err != nil {
					log.Error().Err(err).Msg("mongodb disconnect failed")
				}
			}()

			if err := mongodb.NewAuthRepository(db).EnsureIndexes(ctx); err != nil {
				log.Error().Err(err).Msg("failed to ensure user indexes")
			}
			deps.DB = db
		}
	} else {
		log.Warn().Msg("MONGO_URI not set, starting degraded")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login rate limiting disabled")
		} else {
			defer rdb.Close()
			deps.Redis = rdb
		}
	}

	var audit ports.AuditRecorder
	if deps.DB != nil {
		dispatcher := queue.NewDispatcher(0, mongodb.NewAuditRepository(deps.DB), log)
		dispatcher.Start(ctx)
		audit = dispatcher
	}
	deps.Audit = audit

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}

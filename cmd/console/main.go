package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/userdeck/admin-console/internal/api"
	"github.com/userdeck/admin-console/internal/core/ports"
	"github.com/userdeck/admin-console/internal/core/service"
	"github.com/userdeck/admin-console/internal/infrastructure/config"
	"github.com/userdeck/admin-console/internal/infrastructure/db/mongo"
	"github.com/userdeck/admin-console/internal/infrastructure/db/redis"
	"github.com/userdeck/admin-console/internal/infrastructure/notify"
	"github.com/userdeck/admin-console/internal/infrastructure/upstream"
	"github.com/userdeck/admin-console/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	// Notification center: Redis-backed, in-memory when Redis is down.
	var notifier ports.Notifier
	var rdb *goredis.Client
	store, err := redis.Open(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, keeping notifications in memory")
		notifier = notify.NewMemoryNotifier()
	} else {
		defer store.Close()
		notifier = store
		rdb = store.Client()
	}

	// Audit trail: optional Mongo-backed action log.
	var audit ports.AuditRecorder
	var db *gomongo.Database
	if cfg.Mongo.AuditEnabled {
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Warn().Err(err).Msg("mongo unavailable, audit trail disabled")
		} else {
			defer func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(disconnectCtx)
			}()

			db = database
			repo := mongo.NewAuditRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to ensure audit indexes")
			}
			audit = repo
		}
	}

	directory := upstream.NewClient(upstream.Config{
		BaseURL:   cfg.Upstream.BaseURL,
		UploadURL: cfg.Upstream.UploadURL,
		Timeout:   cfg.Upstream.Timeout,
	}, log)

	dashboard := service.NewDashboardService(directory, directory, notifier, audit, cfg.StrictPassword, log)

	// Seed once at startup; on failure the list stays empty, no retry.
	if err := dashboard.LoadInitial(ctx); err != nil {
		log.Warn().Err(err).Msg("starting with an empty user list")
	}

	e := api.NewRouter(dashboard, notifier, audit, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("admin console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"resort_booking/internal/adapters/catalogfeed"
	"resort_booking/internal/adapters/observability"
	redisad "resort_booking/internal/adapters/redis"
	"resort_booking/internal/app"
	"resort_booking/internal/shared"
	mysqlrepo "resort_booking/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// every line of this run carries the same run id
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel).
		With().Str("run_id", uuid.NewString()).Logger()

	log.Info().
		Str("feed", cfg.CatalogFeedURL).
		Int("workers", cfg.SyncWorkers).
		Msg("catalog sync starting")

	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN, mysqlrepo.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := mysqlrepo.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
	}

	feed, err := catalogfeed.New(cfg.CatalogFeedURL, cfg.CatalogFeedKey, cfg.CatalogFeedRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog feed client")
	}

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	catalog := app.NewCatalogService(repo, cache, cfg.CacheTTL())
	syncer := app.NewCatalogSyncService(feed, repo, catalog)

	rep, err := syncer.SyncAll(ctx, cfg.SyncWorkers)
	if err != nil {
		log.Error().Err(err).Msg("catalog sync aborted")
		return
	}
	log.Info().
		Int64("upserted", rep.Upserted).
		Int64("missed", rep.Missed).
		Int64("failed", rep.Failed).
		Msg("catalog sync completed")
}

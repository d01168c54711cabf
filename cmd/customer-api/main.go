package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "resort_booking/internal/adapters/http_server"
	"resort_booking/internal/adapters/observability"
	redisad "resort_booking/internal/adapters/redis"
	"resort_booking/internal/app"
	"resort_booking/internal/clock"
	"resort_booking/internal/shared"
	mysqlrepo "resort_booking/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	// db
	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN, mysqlrepo.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()
	log.Info().Msg("database connection ok")

	if cfg.AutoMigrate {
		if err := mysqlrepo.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
	}

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		// lookups still work straight from the database
		log.Warn().Err(err).Msg("redis unavailable, catalog cache degraded")
	}
	clk := clock.NewSystem()
	catalog := app.NewCatalogService(repo, cache, cfg.CacheTTL())
	booking := app.NewBookingService(catalog, repo, app.BookingOptions{
		Pricer:      app.NewPricer(cfg.VariableMarkup()),
		Clock:       clk,
		VerifyPrice: cfg.BookingVerifyPrice,
	})
	accounts := app.NewAccountService(repo, clk)

	// http
	srv := server.New(server.Options{
		Portal:         "customer",
		Timeout:        cfg.RequestTimeout(),
		AllowedOrigins: cfg.AllowedOrigins(),
	})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountCustomer(&server.CustomerHandlers{
		Booking:  booking,
		Accounts: accounts,
		Sessions: server.NewSessions(server.SessionOptions{
			Name:   "resort_customer",
			Secret: cfg.SessionSecret,
			Secure: cfg.SessionCookieSecure,
		}),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("customer API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("customer API stopped")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront-order-system/services/storefront/internal/dataplatform"
	httpx "storefront-order-system/services/storefront/internal/http"
	"storefront-order-system/services/storefront/internal/http/handlers"
	"storefront-order-system/services/storefront/internal/repo"
	"storefront-order-system/shared/pkg/cache"
	"storefront-order-system/shared/pkg/config"
	"storefront-order-system/shared/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New("storefront", cfg.Common.LogLevel)

	var catalog repo.Catalog = repo.NewStaticCatalog()

	if cfg.Postgres.DSN != "" {
		db := connectPostgres(cfg.Postgres.DSN, log)
		defer db.Close()
		catalog = &repo.ProductsPG{DB: db}
	} else {
		log.Info().Msg("no POSTGRES_DSN, serving built-in catalog")
	}

	if cfg.Redis.Addr != "" {
		rdb := cache.New(cfg.Redis.Addr)
		defer func() { _ = rdb.Close() }()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis ping failed, cache reads will fall through")
		}
		cancel()

		catalog = &repo.ProductsCached{
			Next:  catalog,
			Cache: rdb,
			TTL:   cfg.Storefront.CatalogCacheTTL,
			Log:   log,
		}
	}

	analytics := dataplatform.NewInitializer(cfg.DataPlatform, cfg.Rabbit.URL, log)
	defer func() { _ = analytics.Close() }()

	products := &handlers.ProductsHandler{Catalog: catalog, Tracker: analytics, Log: log}
	pages := &handlers.PagesHandler{Tracker: analytics, Log: log}

	router := httpx.NewRouter(&httpx.Handlers{
		Health:       handlers.Health,
		ListProducts: products.List,
		GetProduct:   products.Get,
		HealthInfo:   pages.HealthInfo,
		Admin:        pages.Admin,
	}, httpx.Options{Log: log, AllowedOrigins: cfg.HTTP.CORSAllowedOrigins})

	srv := &http.Server{
		Addr:              cfg.Storefront.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutdown...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}

func connectPostgres(dsn string, log zerolog.Logger) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("pg connect failed")
	}

	products := &repo.ProductsPG{DB: db}
	if err := products.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure schema failed")
	}
	if err := products.Seed(ctx, repo.SeedProducts()); err != nil {
		log.Fatal().Err(err).Msg("seed catalog failed")
	}
	return db
}

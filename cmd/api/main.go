package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "balearic_charter/internal/adapters/http_server"
	"balearic_charter/internal/adapters/objectstore"
	"balearic_charter/internal/adapters/observability"
	redisad "balearic_charter/internal/adapters/redis"
	"balearic_charter/internal/app"
	"balearic_charter/internal/pricing"
	"balearic_charter/internal/shared"
	mysqlrepo "balearic_charter/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	store, err := objectstore.New(cfg.StorageBase, cfg.StorageBucket, cfg.StorageKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("object store init failed")
	}
	window := pricing.Window{Deadline: cfg.PromoDeadline, DiscountPercent: cfg.PromoDiscountPct}

	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	c := app.NewContentService(repo, cache, store)
	st := app.NewStatsService(repo)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, C: c, S: st, Window: window, AdminKey: cfg.AdminKey})

	log.Info().Str("addr", cfg.HTTPAddr).Time("promo_deadline", cfg.PromoDeadline).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Tally/internal/api/middleware"
	"Tally/internal/api/routes"
	"Tally/internal/config"
	"Tally/internal/core/voting"
	"Tally/internal/db/postgres"
	"Tally/internal/monitoring"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	logger.Info("connected to database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}

	if err := goose.Up(db, cfg.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	logger.Info("migrations completed")

	monitoring.RegisterMetrics()

	tables, err := cfg.TableMappings()
	if err != nil {
		log.Fatal("Failed to parse resolver tables:", err)
	}

	resolver, err := postgres.NewTableResolver(db, tables)
	if err != nil {
		log.Fatal("Failed to build resolver:", err)
	}

	store := postgres.NewVoteStore(db)
	service := voting.NewService(store, resolver, middleware.PositiveIDIdentity{}, logger)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(monitoring.Middleware)
	r.Use(middleware.Identity)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	r.Use(rateLimiter.Middleware)

	routes.RegisterVoteRoutes(r, service)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	logger.Info("tally server starting", "addr", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, r))
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/KOFI-GYIMAH/first-commit/docs"
	"github.com/KOFI-GYIMAH/first-commit/internal/config"
	"github.com/KOFI-GYIMAH/first-commit/internal/db"
	"github.com/KOFI-GYIMAH/first-commit/internal/handler"
	md "github.com/KOFI-GYIMAH/first-commit/internal/middleware"
	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/internal/queue"
	"github.com/KOFI-GYIMAH/first-commit/internal/service"
	"github.com/KOFI-GYIMAH/first-commit/internal/worker"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title First Commit Service
// @version 1.0.0
// @description Finds the first commit of a GitHub user's oldest repository.
// @host localhost:8081
// @BasePath /v1
func main() {
	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// * Initialize resolver and its GitHub client
	resolver, err := service.NewResolverFromConfig(cfg)
	if err != nil {
		logger.Error("Failed to build resolver: %v", err)
		os.Exit(1)
	}

	// * Lookup ledger: Postgres store, optionally fed through RabbitMQ
	var (
		store    models.LookupStore
		recorder models.LookupRecorder
	)

	if cfg.DBURL != "" {
		database, err := db.NewPostgresDB(cfg.DBURL)
		if err != nil {
			logger.Error("Failed to initialize database: %v", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.Migrate(cfg.MigrationsPath); err != nil {
			logger.Error("Failed to run migrations: %v", err)
			os.Exit(1)
		}
		logger.Info("Successfully ran migrations")

		store = database
		recorder = db.NewRecorder(database)
	}

	var rabbitMQ *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("Failed to initialize RabbitMQ: %v", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()

		recorder = rabbitMQ
	}

	ledger := service.NewLedgerService(store, recorder)

	if rabbitMQ != nil {
		if store != nil {
			if err := worker.NewLedgerConsumer(rabbitMQ, ledger).Start(ctx); err != nil {
				logger.Error("Failed to start ledger consumer: %v", err)
				os.Exit(1)
			}
		} else {
			logger.Warn("RABBITMQ_URL is set without DB_PATH, lookups are published but not stored here")
		}
	}

	if store != nil {
		go worker.NewPurgeWorker(ledger, cfg.PurgeInterval, cfg.LookupRetention).Run(ctx)
	}

	// * Create API server
	apiHandler := handler.NewFirstCommitHandler(resolver, ledger)
	router := mux.NewRouter()
	router.Use(md.RequestIDMiddleware, md.LoggingMiddleware, md.MetricsMiddleware)
	api := router.PathPrefix("/v1").Subrouter()

	apiHandler.RegisterRoutes(api)
	router.HandleFunc("/healthz", handler.Health).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.PathPrefix("/v1/swagger/").Handler(httpSwagger.WrapHandler)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting API server on %s (default strategy %s)", cfg.ServerPort, cfg.Strategy)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ResolveTimeout+5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api"
	"github.com/ndewijer/Author-Ledger-Backend/internal/config"
	"github.com/ndewijer/Author-Ledger-Backend/internal/database"
	"github.com/ndewijer/Author-Ledger-Backend/internal/logger"
	"github.com/ndewijer/Author-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Author-Ledger-Backend/internal/scheduler"
	"github.com/ndewijer/Author-Ledger-Backend/internal/service"
	"github.com/ndewijer/Author-Ledger-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Must(logger.New("info")).Fatal("failed to load configuration", zap.Error(err))
	}

	log := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
	schemaVersion, err := database.Migrate(migrateCtx, db)
	cancelMigrate()
	if err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	log.Info("connected to database",
		zap.String("path", cfg.Database.Path),
		zap.Int64("schema_version", schemaVersion),
		zap.String("app_version", version.Version),
	)

	// Create repositories
	bookRepo := repository.NewBookRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	analyticsService := service.NewAnalyticsService(
		bookRepo,
		expenseRepo,
		saleRepo,
		cfg.Analytics.MaxConcurrency,
	)
	snapshotService := service.NewSnapshotService(
		analyticsService,
		snapshotRepo,
		logger.Named(log, "snapshot"),
	)
	services := api.Services{
		System:    service.NewSystemService(db),
		Book:      service.NewBookService(bookRepo),
		Expense:   service.NewExpenseService(expenseRepo, bookRepo),
		Sale:      service.NewSaleService(saleRepo, bookRepo, logger.Named(log, "sale")),
		Analytics: analyticsService,
		Snapshot:  snapshotService,
	}

	sched := scheduler.NewScheduler(cfg.Snapshot, snapshotService, logger.Named(log, "scheduler"))
	if err := sched.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}

	// Create router
	router := api.NewRouter(services, cfg, logger.Named(log, "http"))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sched.Stop()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("server exited")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/config"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/database"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/logging"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/scheduler"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/secret"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/service"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/torn"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Log)
	logger.WithField("version", version.Version).Info("starting trade tracker")

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db, logger); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	logger.WithField("path", cfg.Database.Path).Info("connected to database")

	// Stored API keys require an encryption key; without one only TORN_API_KEY is used.
	var cipher *secret.Cipher
	if cfg.Security.EncryptionKey != "" {
		cipher, err = secret.NewCipher(cfg.Security.EncryptionKey)
		if err != nil {
			logger.Fatalf("Invalid encryption key: %v", err)
		}
	} else {
		logger.Warn("ENCRYPTION_KEY not set, api keys cannot be stored through the API")
	}

	// Create repositories
	tradeLogRepo := repository.NewTradeLogRepository(db)
	itemRepo := repository.NewItemRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	tornConfigRepo := repository.NewTornConfigRepository(db)

	// Create services
	tornConfigService := service.NewTornConfigService(
		tornConfigRepo,
		cipher,
		cfg.Torn.APIKey,
		logger.WithField("component", "torn_config"),
	)
	client := torn.NewAPIClient(cfg.Torn, tornConfigService)

	services := api.Services{
		System: service.NewSystemService(db),
		TradeLog: service.NewTradeLogService(
			db,
			tradeLogRepo,
			client,
			logger.WithField("component", "trade_log"),
		),
		Item: service.NewItemService(
			db,
			itemRepo,
			client,
			logger.WithField("component", "item"),
		),
		Snapshot: service.NewSnapshotService(
			db,
			snapshotRepo,
			logger.WithField("component", "snapshot"),
		),
		Report: service.NewReportService(
			tradeLogRepo,
			snapshotRepo,
			itemRepo,
			logger.WithField("component", "report"),
			cfg.Report.WindowDays,
		),
		TornConfig: tornConfigService,
	}

	// Periodic refresh from the Torn API
	var sched *scheduler.Scheduler
	if cfg.Sync.Enabled {
		sched, err = scheduler.New(cfg.Sync, services.TradeLog, services.Item, logger.WithField("component", "scheduler"))
		if err != nil {
			logger.Fatalf("Failed to create scheduler: %v", err)
		}
		sched.Start()
	}

	// Create router
	router := api.NewRouter(services, cfg, logger.WithField("component", "http"))

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
		logger.Infof("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	if sched != nil {
		if err := sched.Stop(ctx); err != nil {
			logger.Errorf("Scheduler did not stop cleanly: %v", err)
		}
	}

	logger.Info("Server exited")
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/config"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/service"
)

// Services groups the services the HTTP layer delegates to.
type Services struct {
	System     *service.SystemService
	TradeLog   *service.TradeLogService
	Item       *service.ItemService
	Snapshot   *service.SnapshotService
	Report     *service.ReportService
	TornConfig *service.TornConfigService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config, logger logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.NewLogger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(services.System)
	reportHandler := handlers.NewReportHandler(services.Report)
	snapshotHandler := handlers.NewSnapshotHandler(services.Snapshot)
	tradeLogHandler := handlers.NewTradeLogHandler(services.TradeLog)
	itemHandler := handlers.NewItemHandler(services.Item)
	tornConfigHandler := handlers.NewTornConfigHandler(services.TornConfig)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", reportHandler.Inventory)
			r.Post("/", snapshotHandler.CreateSnapshot)
		})

		r.Route("/snapshot", func(r chi.Router) {
			r.Get("/", snapshotHandler.Snapshots)
			r.Get("/latest", snapshotHandler.LatestSnapshot)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", snapshotHandler.Snapshot)
			})
		})

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", tradeLogHandler.Transactions)
			r.Post("/", tradeLogHandler.SyncLogs)
		})

		r.Post("/items", itemHandler.SyncItems)

		r.Get("/profit/daily", reportHandler.DailyProfit)
		r.Get("/stats/items", reportHandler.ItemStats)

		r.Route("/torn/config", func(r chi.Router) {
			r.Get("/", tornConfigHandler.Config)
			r.Put("/", tornConfigHandler.SetConfig)
		})
	})

	return r
}

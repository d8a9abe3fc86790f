package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/service"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/validation"
)

// ReportHandler handles HTTP requests for the derived trading reports.
// Every report is recomputed from the stored logs, snapshots and item catalogue on request.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler with the provided service dependency.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Inventory handles GET requests for the reconciled inventory.
// Returns an object keyed by item ID holding quantity, average prices, market price and name.
// Without any snapshot the object is empty.
//
// Endpoint: GET /api/inventory
// Response: 200 OK with map of InventoryEntry
// Error: 500 Internal Server Error if retrieval fails
func (h *ReportHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.reportService.Inventory(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInventory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, inventory)
}

// DailyProfit handles GET requests for the realized profit per calendar day.
// The optional days parameter selects the window length; the response holds one key per day,
// most recent first, with zero for days without sells.
//
// Endpoint: GET /api/profit/daily
// Query Parameters: days (optional, 1..365, default 30)
// Response: 200 OK with object of date to profit
// Error: 400 Bad Request if days is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *ReportHandler) DailyProfit(w http.ResponseWriter, r *http.Request) {
	days, err := validation.ParseWindowDays(r.URL.Query().Get("days"), service.MaxWindowDays)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidWindow.Error(), err.Error())
		return
	}

	profit, err := h.reportService.DailyProfit(r.Context(), days)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidWindow) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidWindow.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveProfit.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, profit)
}

// ItemStats handles GET requests for lifetime per-item trading statistics.
//
// Endpoint: GET /api/stats/items
// Response: 200 OK with map of ItemStats keyed by item ID
// Error: 500 Internal Server Error if retrieval fails
func (h *ReportHandler) ItemStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportService.ItemStats(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveItemStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

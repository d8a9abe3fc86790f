package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/service"
)

// respondSyncError maps a failed Torn API refresh onto an HTTP status.
func respondSyncError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrSyncInProgress):
		response.RespondError(w, http.StatusConflict, apperrors.ErrSyncInProgress.Error(), "")
	case errors.Is(err, apperrors.ErrTornConfigNotFound):
		response.RespondError(w, http.StatusPreconditionFailed, apperrors.ErrTornConfigNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrTornAPI):
		response.RespondError(w, http.StatusBadGateway, message, err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}

// TradeLogHandler handles HTTP requests for the stored trade logs.
type TradeLogHandler struct {
	tradeLogService *service.TradeLogService
}

// NewTradeLogHandler creates a new TradeLogHandler with the provided service dependency.
func NewTradeLogHandler(tradeLogService *service.TradeLogService) *TradeLogHandler {
	return &TradeLogHandler{
		tradeLogService: tradeLogService,
	}
}

// SyncLogs handles POST requests fetching new trade logs from the Torn API.
// A sync where only some categories failed still succeeds and lists them in failedCategories.
//
// Endpoint: POST /api/logs
// Response: 200 OK with SyncResult
// Error: 409 Conflict if a sync is already running
// Error: 412 Precondition Failed if no Torn API key is configured
// Error: 502 Bad Gateway if the Torn API rejected every request
// Error: 500 Internal Server Error if the sync fails otherwise
func (h *TradeLogHandler) SyncLogs(w http.ResponseWriter, r *http.Request) {
	result, err := h.tradeLogService.Sync(r.Context())
	if err != nil {
		respondSyncError(w, apperrors.ErrFailedToSyncLogs.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Transactions handles GET requests for the stored trade logs flattened to one row per item.
//
// Endpoint: GET /api/logs
// Query Parameters: since (YYYY-MM-DD or RFC3339), direction (buy|sell), item (item ID), all optional
// Response: 200 OK with array of TransactionResponse, oldest first
// Error: 400 Bad Request if a filter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeLogHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters, err := request.ParseTradeLogFilters(query.Get("since"), query.Get("direction"), query.Get("item"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filters", err.Error())
		return
	}

	transactions, err := h.tradeLogService.GetTransactions(r.Context(), filters)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// ItemHandler handles HTTP requests for the item catalogue.
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new ItemHandler with the provided service dependency.
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

// SyncItems handles POST requests refreshing item names and market prices from the Torn API.
//
// Endpoint: POST /api/items
// Response: 200 OK with SyncResult
// Error: 409 Conflict if a sync is already running
// Error: 412 Precondition Failed if no Torn API key is configured
// Error: 502 Bad Gateway if the Torn API request failed
// Error: 500 Internal Server Error if storing the catalogue fails
func (h *ItemHandler) SyncItems(w http.ResponseWriter, r *http.Request) {
	result, err := h.itemService.Sync(r.Context())
	if err != nil {
		respondSyncError(w, apperrors.ErrFailedToSyncItems.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/service"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/validation"
)

// TornConfigHandler handles HTTP requests for the Torn API key configuration.
// The key itself is never returned.
type TornConfigHandler struct {
	tornConfigService *service.TornConfigService
}

// NewTornConfigHandler creates a new TornConfigHandler with the provided service dependency.
func NewTornConfigHandler(tornConfigService *service.TornConfigService) *TornConfigHandler {
	return &TornConfigHandler{
		tornConfigService: tornConfigService,
	}
}

// Config handles GET requests reporting whether a Torn API key is configured.
//
// Endpoint: GET /api/torn/config
// Response: 200 OK with TornConfigStatus
// Error: 500 Internal Server Error if retrieval fails
func (h *TornConfigHandler) Config(w http.ResponseWriter, r *http.Request) {
	status, err := h.tornConfigService.GetConfig(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTornConfig.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, status)
}

// SetConfig handles PUT requests storing a new Torn API key encrypted at rest.
//
// Endpoint: PUT /api/torn/config
// Request Body: SetTornConfigRequest (apiKey)
// Response: 200 OK with TornConfigStatus
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 409 Conflict if no encryption key is configured on the server
// Error: 500 Internal Server Error if storing the key fails
func (h *TornConfigHandler) SetConfig(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetTornConfigRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetTornConfig(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	status, err := h.tornConfigService.SetAPIKey(r.Context(), strings.TrimSpace(req.APIKey))
	if err != nil {
		if errors.Is(err, apperrors.ErrEncryptionNotConfigured) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrEncryptionNotConfigured.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSetTornConfig.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, status)
}

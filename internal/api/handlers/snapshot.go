package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/service"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/validation"
)

// SnapshotHandler handles HTTP requests for inventory snapshots.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided service dependency.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// CreateSnapshot handles POST requests recording the absolute inventory at this moment.
// The new snapshot becomes the baseline of the inventory report.
//
// Endpoint: POST /api/inventory
// Request Body: object of item ID to quantity, e.g. {"286": 12}
// Response: 201 Created with Snapshot
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 500 Internal Server Error if creation fails
func (h *SnapshotHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateSnapshotRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateSnapshot(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	snapshot, err := h.snapshotService.CreateSnapshot(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, snapshot)
}

// Snapshots handles GET requests listing every snapshot, newest first.
//
// Endpoint: GET /api/snapshot
// Response: 200 OK with array of SnapshotSummary
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshotService.ListSnapshots(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// LatestSnapshot handles GET requests for the snapshot the inventory report is based on.
//
// Endpoint: GET /api/snapshot/latest
// Response: 200 OK with Snapshot
// Error: 404 Not Found if no snapshot was recorded yet
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) LatestSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.LatestSnapshot(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshot.Error(), err.Error())
		return
	}
	if snapshot == nil {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), "")
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// Snapshot handles GET requests to retrieve a single snapshot by ID.
//
// Endpoint: GET /api/snapshot/{uuid}
// Response: 200 OK with Snapshot
// Error: 400 Bad Request if snapshot ID is invalid (validated by middleware)
// Error: 404 Not Found if snapshot not found
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshotID := chi.URLParam(r, "uuid")

	snapshot, err := h.snapshotService.GetSnapshot(r.Context(), snapshotID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

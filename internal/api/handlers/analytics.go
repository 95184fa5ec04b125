package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Author-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Author-Ledger-Backend/internal/service"
)

// AnalyticsHandler serves the catalogue-wide analytics and the materialized snapshots.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	snapshotService  *service.SnapshotService
}

// NewAnalyticsHandler creates a new AnalyticsHandler with the provided service dependencies.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, snapshotService *service.SnapshotService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		snapshotService:  snapshotService,
	}
}

// Totals handles GET requests for totals over every book, unassigned expenses included.
//
// Endpoint: GET /api/analytics/totals
// Response: 200 OK with TotalsResponse
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.analyticsService.GlobalTotals(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeTotals.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newTotalsResponse(totals))
}

// Channels handles GET requests for the revenue split by sales channel over every sale.
//
// Endpoint: GET /api/analytics/channels
// Response: 200 OK with array of ChannelResponse
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Channels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.analyticsService.GlobalChannels(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newChannelResponses(channels))
}

// Monthly handles GET requests for the monthly expense and sales trend.
//
// Endpoint: GET /api/analytics/monthly
// Response: 200 OK with array of MonthlyResponse in chronological order
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	months, err := h.analyticsService.GlobalMonthly(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newMonthlyResponses(months))
}

// Overview handles GET requests for one freshly computed report per book.
//
// Endpoint: GET /api/analytics/overview
// Response: 200 OK with array of ReportResponse
// Error: 500 Internal Server Error if any report fails
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	reports, err := h.analyticsService.Overview(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeReport.Error(), err.Error())
		return
	}

	resp := make([]ReportResponse, len(reports))
	for i, report := range reports {
		resp[i] = newReportResponse(report)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Snapshots handles GET requests for the latest materialized report summaries.
//
// Endpoint: GET /api/analytics/snapshots
// Response: 200 OK with array of SnapshotResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *AnalyticsHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshotService.GetSnapshots(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieve.Error(), err.Error())
		return
	}

	resp := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		resp[i] = newSnapshotResponse(s)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Snapshot handles GET requests for the full materialized report of one book.
//
// Endpoint: GET /api/analytics/snapshots/{uuid}
// Response: 200 OK with ReportResponse
// Error: 404 Not Found if no snapshot exists for the book
// Error: 500 Internal Server Error if retrieval fails
func (h *AnalyticsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	report, err := h.snapshotService.GetSnapshotReport(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieve.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newReportResponse(report))
}

// RefreshResponse reports how many snapshots a refresh wrote.
type RefreshResponse struct {
	Refreshed int `json:"refreshed"`
}

// RefreshSnapshots handles POST requests to recompute and store every book's snapshot now.
//
// Endpoint: POST /api/analytics/snapshots/refresh
// Response: 200 OK with RefreshResponse
// Error: 500 Internal Server Error if the refresh fails
func (h *AnalyticsHandler) RefreshSnapshots(w http.ResponseWriter, r *http.Request) {
	count, err := h.snapshotService.Refresh(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, RefreshResponse{Refreshed: count})
}

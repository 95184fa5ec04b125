package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Author-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Author-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Author-Ledger-Backend/internal/service"
	"github.com/ndewijer/Author-Ledger-Backend/internal/validation"
)

// SaleHandler handles HTTP requests for sale endpoints.
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new SaleHandler with the provided service dependency.
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// GetSales handles GET requests to list sales, optionally filtered.
//
// Endpoint: GET /api/sale
// Query Parameters:
//   - book_id (optional): Restrict to one book
//   - start_date, end_date (optional): Inclusive date range (YYYY-MM-DD)
//   - type (optional): Sale type
//
// Response: 200 OK with array of SaleResponse
// Error: 400 Bad Request if a filter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *SaleHandler) GetSales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := request.ParseSaleFilters(q.Get("book_id"), q.Get("start_date"), q.Get("end_date"), q.Get("type"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter parameters", err.Error())
		return
	}

	sales, err := h.saleService.GetSales(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSales.Error(), err.Error())
		return
	}

	resp := make([]SaleResponse, len(sales))
	for i, s := range sales {
		resp[i] = newSaleResponse(s)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// GetSale handles GET requests to retrieve a single sale.
//
// Endpoint: GET /api/sale/{uuid}
// Response: 200 OK with SaleResponse
// Error: 404 Not Found if the sale doesn't exist
// Error: 500 Internal Server Error if retrieval fails
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.saleService.GetSale(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveSales.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newSaleResponse(sale))
}

// CreateSale handles POST requests to record a new sale.
//
// Endpoint: POST /api/sale
// Request Body: CreateSaleRequest
// Response: 201 Created with SaleResponse
// Error: 400 Bad Request if the body is invalid
// Error: 404 Not Found if the referenced book doesn't exist
// Error: 500 Internal Server Error if creation fails
func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateSaleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateSale(req); err != nil {
		respondServiceError(w, err, "failed to create sale")
		return
	}

	sale, err := h.saleService.CreateSale(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create sale")
		return
	}

	response.RespondJSON(w, http.StatusCreated, newSaleResponse(*sale))
}

// UpdateSale handles PUT requests to edit a sale. Omitted fields are unchanged.
//
// Endpoint: PUT /api/sale/{uuid}
// Request Body: UpdateSaleRequest
// Response: 200 OK with SaleResponse
// Error: 400 Bad Request if the body is invalid
// Error: 404 Not Found if the sale or the referenced book doesn't exist
// Error: 500 Internal Server Error if the update fails
func (h *SaleHandler) UpdateSale(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSaleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateSale(req); err != nil {
		respondServiceError(w, err, "failed to update sale")
		return
	}

	sale, err := h.saleService.UpdateSale(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update sale")
		return
	}

	response.RespondJSON(w, http.StatusOK, newSaleResponse(*sale))
}

// DeleteSale handles DELETE requests.
//
// Endpoint: DELETE /api/sale/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the sale doesn't exist
// Error: 500 Internal Server Error if deletion fails
func (h *SaleHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	if err := h.saleService.DeleteSale(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete sale")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

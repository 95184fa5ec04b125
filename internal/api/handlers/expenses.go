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

// ExpenseHandler handles HTTP requests for expense endpoints.
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler with the provided service dependency.
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// GetExpenses handles GET requests to list expenses, optionally filtered.
//
// Endpoint: GET /api/expense
// Query Parameters:
//   - book_id (optional): Restrict to one book
//   - start_date, end_date (optional): Inclusive date range (YYYY-MM-DD)
//   - category (optional): Expense category
//
// Response: 200 OK with array of ExpenseResponse
// Error: 400 Bad Request if a filter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *ExpenseHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := request.ParseExpenseFilters(q.Get("book_id"), q.Get("start_date"), q.Get("end_date"), q.Get("category"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter parameters", err.Error())
		return
	}

	expenses, err := h.expenseService.GetExpenses(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveExpenses.Error(), err.Error())
		return
	}

	resp := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = newExpenseResponse(e)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// GetExpense handles GET requests to retrieve a single expense.
//
// Endpoint: GET /api/expense/{uuid}
// Response: 200 OK with ExpenseResponse
// Error: 404 Not Found if the expense doesn't exist
// Error: 500 Internal Server Error if retrieval fails
func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenseService.GetExpense(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveExpenses.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newExpenseResponse(expense))
}

// CreateExpense handles POST requests to book a new expense.
//
// Endpoint: POST /api/expense
// Request Body: CreateExpenseRequest
// Response: 201 Created with ExpenseResponse
// Error: 400 Bad Request if the body is invalid
// Error: 404 Not Found if the referenced book doesn't exist
// Error: 500 Internal Server Error if creation fails
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateExpenseRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateExpense(req); err != nil {
		respondServiceError(w, err, "failed to create expense")
		return
	}

	expense, err := h.expenseService.CreateExpense(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create expense")
		return
	}

	response.RespondJSON(w, http.StatusCreated, newExpenseResponse(*expense))
}

// UpdateExpense handles PUT requests to edit an expense. Omitted fields are unchanged.
//
// Endpoint: PUT /api/expense/{uuid}
// Request Body: UpdateExpenseRequest
// Response: 200 OK with ExpenseResponse
// Error: 400 Bad Request if the body is invalid
// Error: 404 Not Found if the expense or the referenced book doesn't exist
// Error: 500 Internal Server Error if the update fails
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateExpenseRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateExpense(req); err != nil {
		respondServiceError(w, err, "failed to update expense")
		return
	}

	expense, err := h.expenseService.UpdateExpense(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update expense")
		return
	}

	response.RespondJSON(w, http.StatusOK, newExpenseResponse(*expense))
}

// DeleteExpense handles DELETE requests.
//
// Endpoint: DELETE /api/expense/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the expense doesn't exist
// Error: 500 Internal Server Error if deletion fails
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.expenseService.DeleteExpense(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete expense")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

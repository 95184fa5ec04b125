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

// BookHandler handles HTTP requests for book endpoints, including the per-book analytics.
type BookHandler struct {
	bookService      *service.BookService
	analyticsService *service.AnalyticsService
}

// NewBookHandler creates a new BookHandler with the provided service dependencies.
func NewBookHandler(bookService *service.BookService, analyticsService *service.AnalyticsService) *BookHandler {
	return &BookHandler{
		bookService:      bookService,
		analyticsService: analyticsService,
	}
}

// GetBooks handles GET requests to retrieve all books.
//
// Endpoint: GET /api/book
// Response: 200 OK with array of BookResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.GetBooks(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveBooks.Error(), err.Error())
		return
	}

	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = newBookResponse(b)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// GetBook handles GET requests to retrieve a single book.
//
// Endpoint: GET /api/book/{uuid}
// Response: 200 OK with BookResponse
// Error: 404 Not Found if the book doesn't exist
// Error: 500 Internal Server Error if retrieval fails
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookService.GetBook(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveBook.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newBookResponse(book))
}

// CreateBook handles POST requests to create a book.
//
// Endpoint: POST /api/book
// Request Body: CreateBookRequest
// Response: 201 Created with BookResponse
// Error: 400 Bad Request if the body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateBookRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateBook(req); err != nil {
		respondServiceError(w, err, "failed to create book")
		return
	}

	book, err := h.bookService.CreateBook(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create book")
		return
	}

	response.RespondJSON(w, http.StatusCreated, newBookResponse(*book))
}

// UpdateBook handles PUT requests to edit a book's metadata. Omitted fields are unchanged.
//
// Endpoint: PUT /api/book/{uuid}
// Request Body: UpdateBookRequest
// Response: 200 OK with BookResponse
// Error: 400 Bad Request if the body is invalid
// Error: 404 Not Found if the book doesn't exist
// Error: 500 Internal Server Error if the update fails
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateBookRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateBook(req); err != nil {
		respondServiceError(w, err, "failed to update book")
		return
	}

	book, err := h.bookService.UpdateBook(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update book")
		return
	}

	response.RespondJSON(w, http.StatusOK, newBookResponse(*book))
}

// DeleteBook handles DELETE requests. Sales and snapshots of the book are removed with it;
// its expenses become unassigned.
//
// Endpoint: DELETE /api/book/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the book doesn't exist
// Error: 500 Internal Server Error if deletion fails
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.bookService.DeleteBook(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete book")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Report handles GET requests for a book's full financial report, computed on demand.
//
// Endpoint: GET /api/book/{uuid}/report
// Response: 200 OK with ReportResponse
// Error: 404 Not Found if the book doesn't exist
// Error: 500 Internal Server Error if computation fails
func (h *BookHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsService.BookReport(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeReport.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newReportResponse(report))
}

// Totals handles GET requests for a book's lightweight totals.
//
// Endpoint: GET /api/book/{uuid}/totals
// Response: 200 OK with TotalsResponse
// Error: 404 Not Found if the book doesn't exist
// Error: 500 Internal Server Error if computation fails
func (h *BookHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.analyticsService.BookTotals(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeTotals.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newTotalsResponse(totals))
}

// Channels handles GET requests for a book's revenue split by sales channel.
//
// Endpoint: GET /api/book/{uuid}/channels
// Response: 200 OK with array of ChannelResponse
// Error: 404 Not Found if the book doesn't exist
// Error: 500 Internal Server Error if computation fails
func (h *BookHandler) Channels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.analyticsService.BookChannels(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeReport.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newChannelResponses(channels))
}

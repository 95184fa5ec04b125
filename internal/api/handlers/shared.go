package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Author-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
	"github.com/ndewijer/Author-Ledger-Backend/internal/validation"
)

// maxBodyBytes caps request bodies accepted by parseJSON.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into a T.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is empty")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(&v); err != nil {
		return v, fmt.Errorf("invalid JSON body: %w", err)
	}

	return v, nil
}

// respondServiceError maps a service error onto a status code.
// Not-found sentinels become 404, validation and enum decoding failures become 400,
// and anything else is a 500 carrying fallback as the message.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *validation.Error

	switch {
	case errors.Is(err, apperrors.ErrBookNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrBookNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrExpenseNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrExpenseNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrSaleNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrSaleNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrSnapshotNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), err.Error())
	case errors.As(err, &validationErr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
	case errors.Is(err, model.ErrUnknownExpenseCategory), errors.Is(err, model.ErrUnknownSaleType):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}

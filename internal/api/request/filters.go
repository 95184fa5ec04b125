package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Author-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

// ParseExpenseFilters extracts and validates expense list filters from query parameters.
// All parameters are optional.
//
// Validation rules:
//   - book_id: Must be a valid UUID
//   - start_date/end_date: Must be valid date/datetime strings (YYYY-MM-DD or RFC3339),
//     with start_date not after end_date
//   - category: Must be a known expense category (case-insensitive)
//
// Returns an error if any parameter fails validation.
func ParseExpenseFilters(bookIDParam, startDateParam, endDateParam, categoryParam string) (model.ExpenseFilter, error) {
	var filter model.ExpenseFilter

	bookID, start, end, err := parseCommonFilters(bookIDParam, startDateParam, endDateParam)
	if err != nil {
		return filter, err
	}
	filter.BookID, filter.StartDate, filter.EndDate = bookID, start, end

	if categoryParam != "" {
		category, err := model.ParseExpenseCategory(strings.TrimSpace(categoryParam))
		if err != nil {
			return filter, fmt.Errorf("invalid category: %w", err)
		}
		filter.Category = category
	}

	return filter, nil
}

// ParseSaleFilters is ParseExpenseFilters for sales, with a sale type in place of a category.
func ParseSaleFilters(bookIDParam, startDateParam, endDateParam, typeParam string) (model.SaleFilter, error) {
	var filter model.SaleFilter

	bookID, start, end, err := parseCommonFilters(bookIDParam, startDateParam, endDateParam)
	if err != nil {
		return filter, err
	}
	filter.BookID, filter.StartDate, filter.EndDate = bookID, start, end

	if typeParam != "" {
		saleType, err := model.ParseSaleType(strings.TrimSpace(typeParam))
		if err != nil {
			return filter, fmt.Errorf("invalid type: %w", err)
		}
		filter.Type = saleType
	}

	return filter, nil
}

func parseCommonFilters(bookIDParam, startDateParam, endDateParam string) (string, time.Time, time.Time, error) {
	var start, end time.Time

	if bookIDParam != "" {
		if _, err := uuid.Parse(bookIDParam); err != nil {
			return "", start, end, fmt.Errorf("invalid book_id: %s", bookIDParam)
		}
	}

	// Parse start_date
	if startDateParam != "" {
		t, err := parseFilterTime(startDateParam)
		if err != nil {
			return "", start, end, fmt.Errorf("invalid start_date format: %w", err)
		}
		start = t
	}

	// Parse end_date
	if endDateParam != "" {
		t, err := parseFilterTime(endDateParam)
		if err != nil {
			return "", start, end, fmt.Errorf("invalid end_date format: %w", err)
		}
		end = t
	}

	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return "", start, end, fmt.Errorf("%w: start_date %s is after end_date %s", apperrors.ErrInvalidDateRange, startDateParam, endDateParam)
	}

	return bookIDParam, start, end, nil
}

// parseFilterTime parses date strings for filter parameters.
// Accepts YYYY-MM-DD, RFC3339, and RFC3339 with milliseconds formats.
func parseFilterTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05.000Z07:00"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date or datetime", str)
}

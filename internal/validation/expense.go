package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

// ValidateCreateExpense validates an expense creation request.
//
// Required fields:
//   - category: one of the known expense categories (case-insensitive)
//   - amount: non-negative
//   - date: YYYY-MM-DD
//
// bookId is optional; an expense without a book is unassigned.
func ValidateCreateExpense(req request.CreateExpenseRequest) error {
	errors := make(map[string]string)

	if req.BookID != "" {
		if err := ValidateUUID(req.BookID); err != nil {
			errors["bookId"] = err.Error()
		}
	}

	checkCategory(errors, req.Category)
	checkNonNegative(errors, "amount", req.Amount)
	checkDate(errors, "date", req.Date)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateExpense validates an expense update request. Only provided fields are checked.
func ValidateUpdateExpense(req request.UpdateExpenseRequest) error {
	errors := make(map[string]string)

	if req.BookID != nil && *req.BookID != "" {
		if err := ValidateUUID(*req.BookID); err != nil {
			errors["bookId"] = err.Error()
		}
	}
	if req.Category != nil {
		checkCategory(errors, *req.Category)
	}
	if req.Amount != nil {
		checkNonNegative(errors, "amount", *req.Amount)
	}
	if req.Date != nil {
		checkDate(errors, "date", *req.Date)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func checkCategory(errors map[string]string, category string) {
	if strings.TrimSpace(category) == "" {
		errors["category"] = "category is required"
	} else if _, err := model.ParseExpenseCategory(category); err != nil {
		errors["category"] = fmt.Sprintf("invalid category: %s", category)
	}
}

package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/request"
)

const validBookID = "6f1c2b7e-1d3a-4c5b-9e8f-7a6b5c4d3e2f"

func ptr[T any](v T) *T {
	return &v
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()

	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	return verr.Fields
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, ValidateUUID(validBookID))
	assert.ErrorIs(t, ValidateUUID("nope"), ErrInvalidUUID)
}

func TestValidateCreateBook(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateCreateBook(request.CreateBookRequest{Title: "Tides", LaunchDate: "2024-05-01"}))
	})

	t.Run("missing title and bad date", func(t *testing.T) {
		fields := fieldErrors(t, ValidateCreateBook(request.CreateBookRequest{Title: "  ", LaunchDate: "May 1st"}))

		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "launchDate")
	})
}

func TestValidateUpdateBook(t *testing.T) {
	assert.NoError(t, ValidateUpdateBook(request.UpdateBookRequest{}))

	fields := fieldErrors(t, ValidateUpdateBook(request.UpdateBookRequest{Title: ptr(""), ISBN: ptr("978-0-00-000000-0-TOO-LONG")}))
	assert.Equal(t, "title cannot be empty", fields["title"])
	assert.Contains(t, fields, "isbn")
}

func TestValidateCreateExpense(t *testing.T) {
	valid := request.CreateExpenseRequest{
		BookID:   validBookID,
		Category: "cover_design",
		Amount:   decimal.RequireFromString("350.00"),
		Date:     "2024-02-10",
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateCreateExpense(valid))
	})

	t.Run("unassigned expense is valid", func(t *testing.T) {
		req := valid
		req.BookID = ""
		assert.NoError(t, ValidateCreateExpense(req))
	})

	t.Run("invalid fields", func(t *testing.T) {
		req := request.CreateExpenseRequest{
			BookID:   "123",
			Category: "CATERING",
			Amount:   decimal.RequireFromString("-1"),
		}

		fields := fieldErrors(t, ValidateCreateExpense(req))
		assert.Len(t, fields, 4)
		assert.Equal(t, "amount cannot be negative", fields["amount"])
		assert.Equal(t, "date is required", fields["date"])
	})
}

func TestValidateUpdateExpense(t *testing.T) {
	assert.NoError(t, ValidateUpdateExpense(request.UpdateExpenseRequest{BookID: ptr("")}))

	fields := fieldErrors(t, ValidateUpdateExpense(request.UpdateExpenseRequest{Category: ptr("")}))
	assert.Equal(t, "category is required", fields["category"])
}

func TestValidateCreateSale(t *testing.T) {
	valid := request.CreateSaleRequest{
		BookID:      validBookID,
		Type:        "DIRECT_SALE",
		Quantity:    3,
		UnitPrice:   decimal.RequireFromString("12.99"),
		RoyaltyRate: decimal.NewNullDecimal(decimal.RequireFromString("35")),
		Date:        "2024-07-04",
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateCreateSale(valid))
	})

	tests := []struct {
		name   string
		mutate func(r *request.CreateSaleRequest)
		field  string
	}{
		{"missing book", func(r *request.CreateSaleRequest) { r.BookID = "" }, "bookId"},
		{"unknown type", func(r *request.CreateSaleRequest) { r.Type = "SWAP" }, "type"},
		{"zero quantity", func(r *request.CreateSaleRequest) { r.Quantity = 0 }, "quantity"},
		{"negative price", func(r *request.CreateSaleRequest) { r.UnitPrice = decimal.RequireFromString("-0.01") }, "unitPrice"},
		{"negative total", func(r *request.CreateSaleRequest) { r.TotalAmount = ptr(decimal.RequireFromString("-5")) }, "totalAmount"},
		{"royalty above 100", func(r *request.CreateSaleRequest) {
			r.RoyaltyRate = decimal.NewNullDecimal(decimal.RequireFromString("100.5"))
		}, "royaltyRate"},
		{"negative fees", func(r *request.CreateSaleRequest) { r.PlatformFees = decimal.RequireFromString("-2") }, "platformFees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			fields := fieldErrors(t, ValidateCreateSale(req))
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateUpdateSale(t *testing.T) {
	assert.NoError(t, ValidateUpdateSale(request.UpdateSaleRequest{Platform: ptr("")}))

	fields := fieldErrors(t, ValidateUpdateSale(request.UpdateSaleRequest{
		Quantity:     ptr(-1),
		RoyaltyRate:  ptr(decimal.RequireFromString("-3")),
		PublisherCut: ptr(decimal.RequireFromString("-1")),
	}))
	assert.Contains(t, fields, "quantity")
	assert.Contains(t, fields, "royaltyRate")
	assert.Contains(t, fields, "publisherCut")
}

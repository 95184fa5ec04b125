package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

var maxRoyaltyRate = decimal.NewFromInt(100)

// ValidateCreateSale validates a sale creation request.
//
// Required fields:
//   - bookId: valid UUID
//   - type: one of PUBLISHER_SALE, DIRECT_SALE, ONLINE_STORE, OTHER (case-insensitive)
//   - quantity: positive
//   - date: YYYY-MM-DD
//
// Money fields must be non-negative and royaltyRate, when present, between 0 and 100.
func ValidateCreateSale(req request.CreateSaleRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.BookID); err != nil {
		errors["bookId"] = err.Error()
	}

	checkSaleType(errors, req.Type)

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	checkNonNegative(errors, "unitPrice", req.UnitPrice)
	if req.TotalAmount != nil {
		checkNonNegative(errors, "totalAmount", *req.TotalAmount)
	}
	checkNonNegative(errors, "donationAmount", req.DonationAmount)
	checkNonNegative(errors, "publisherCut", req.PublisherCut)
	checkNonNegative(errors, "platformFees", req.PlatformFees)
	if req.RoyaltyRate.Valid {
		checkRoyaltyRate(errors, req.RoyaltyRate.Decimal)
	}
	if req.RoyaltyAmount.Valid {
		checkNonNegative(errors, "royaltyAmount", req.RoyaltyAmount.Decimal)
	}

	checkDate(errors, "date", req.Date)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateSale validates a sale update request. Only provided fields are checked.
func ValidateUpdateSale(req request.UpdateSaleRequest) error {
	errors := make(map[string]string)

	if req.BookID != nil {
		if err := ValidateUUID(*req.BookID); err != nil {
			errors["bookId"] = err.Error()
		}
	}
	if req.Type != nil {
		checkSaleType(errors, *req.Type)
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	for field, value := range map[string]*decimal.Decimal{
		"unitPrice":      req.UnitPrice,
		"totalAmount":    req.TotalAmount,
		"donationAmount": req.DonationAmount,
		"royaltyAmount":  req.RoyaltyAmount,
		"publisherCut":   req.PublisherCut,
		"platformFees":   req.PlatformFees,
	} {
		if value != nil {
			checkNonNegative(errors, field, *value)
		}
	}
	if req.RoyaltyRate != nil {
		checkRoyaltyRate(errors, *req.RoyaltyRate)
	}
	if req.Date != nil {
		checkDate(errors, "date", *req.Date)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func checkSaleType(errors map[string]string, saleType string) {
	if strings.TrimSpace(saleType) == "" {
		errors["type"] = "type is required"
	} else if _, err := model.ParseSaleType(saleType); err != nil {
		errors["type"] = fmt.Sprintf("invalid type: %s", saleType)
	}
}

func checkRoyaltyRate(errors map[string]string, rate decimal.Decimal) {
	if rate.IsNegative() || rate.GreaterThan(maxRoyaltyRate) {
		errors["royaltyRate"] = "royaltyRate must be between 0 and 100"
	}
}

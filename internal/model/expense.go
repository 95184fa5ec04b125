package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExpenseCategory is the closed set of cost categories an expense can be booked under.
type ExpenseCategory string

const (
	ExpensePrintingCosts        ExpenseCategory = "PRINTING_COSTS"
	ExpensePublisherFees        ExpenseCategory = "PUBLISHER_FEES"
	ExpenseIllustratorFees      ExpenseCategory = "ILLUSTRATOR_FEES"
	ExpenseMarketing            ExpenseCategory = "MARKETING"
	ExpenseEditingServices      ExpenseCategory = "EDITING_SERVICES"
	ExpenseProofreading         ExpenseCategory = "PROOFREADING"
	ExpenseAdvertising          ExpenseCategory = "ADVERTISING"
	ExpenseBookTours            ExpenseCategory = "BOOK_TOURS"
	ExpenseEvents               ExpenseCategory = "EVENTS"
	ExpensePromotionalMaterials ExpenseCategory = "PROMOTIONAL_MATERIALS"
	ExpenseWebsite              ExpenseCategory = "WEBSITE"
	ExpenseShippingCosts        ExpenseCategory = "SHIPPING_COSTS"
	ExpenseInventory            ExpenseCategory = "INVENTORY"
	ExpenseStorage              ExpenseCategory = "STORAGE"
	ExpenseCoverDesign          ExpenseCategory = "COVER_DESIGN"
	ExpenseFormatting           ExpenseCategory = "FORMATTING"
	ExpenseISBNRegistration     ExpenseCategory = "ISBN_REGISTRATION"
	ExpenseOther                ExpenseCategory = "OTHER"
)

// ExpenseCategories lists every known category in report order.
var ExpenseCategories = []ExpenseCategory{
	ExpensePrintingCosts,
	ExpensePublisherFees,
	ExpenseIllustratorFees,
	ExpenseMarketing,
	ExpenseEditingServices,
	ExpenseProofreading,
	ExpenseAdvertising,
	ExpenseBookTours,
	ExpenseEvents,
	ExpensePromotionalMaterials,
	ExpenseWebsite,
	ExpenseShippingCosts,
	ExpenseInventory,
	ExpenseStorage,
	ExpenseCoverDesign,
	ExpenseFormatting,
	ExpenseISBNRegistration,
	ExpenseOther,
}

var knownExpenseCategories = func() map[ExpenseCategory]bool {
	m := make(map[ExpenseCategory]bool, len(ExpenseCategories))
	for _, c := range ExpenseCategories {
		m[c] = true
	}
	return m
}()

// ErrUnknownExpenseCategory is returned when decoding a category string that is not in the enumeration.
var ErrUnknownExpenseCategory = errors.New("unknown expense category")

// ParseExpenseCategory decodes a stored or submitted category. Matching is case-insensitive;
// anything outside the enumeration is an error rather than a silent fallback.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(strings.ToUpper(strings.TrimSpace(s)))
	if !knownExpenseCategories[c] {
		return "", fmt.Errorf("%w: %q", ErrUnknownExpenseCategory, s)
	}
	return c, nil
}

// IsValid reports whether c is one of the known categories.
func (c ExpenseCategory) IsValid() bool {
	return knownExpenseCategories[c]
}

// Normalize maps unknown categories to OTHER so groupings never drop a record.
func (c ExpenseCategory) Normalize() ExpenseCategory {
	if c.IsValid() {
		return c
	}
	return ExpenseOther
}

// Label returns a display name such as "Printing Costs".
func (c ExpenseCategory) Label() string {
	return enumLabel(string(c.Normalize()))
}

// Expense is a dated cost booked against a book. An empty BookID means unassigned.
type Expense struct {
	ID          string          `json:"id"`
	BookID      string          `json:"bookId,omitempty"`
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

// ExpenseFilter narrows expense queries. Zero values disable a criterion.
type ExpenseFilter struct {
	BookID    string
	StartDate time.Time
	EndDate   time.Time
	Category  ExpenseCategory
}

func enumLabel(s string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
}

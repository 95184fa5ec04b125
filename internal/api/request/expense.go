package request

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	BookID      string          `json:"bookId"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// UpdateExpenseRequest leaves omitted fields unchanged. An empty bookId unassigns the expense.
type UpdateExpenseRequest struct {
	BookID      *string          `json:"bookId,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *string          `json:"date,omitempty"`
}

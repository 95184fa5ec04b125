package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSnapshot is a stored copy of a book's computed report.
// Snapshots are a cache: the records remain the source of truth and a refresh overwrites them.
type ReportSnapshot struct {
	BookID          string          `json:"bookId"`
	BookTitle       string          `json:"bookTitle"`
	TotalInvestment decimal.Decimal `json:"totalInvestment"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	ROIPercentage   decimal.Decimal `json:"roiPercentage"`
	ProgressPercent decimal.Decimal `json:"progressPercent"`
	FinancialHealth string          `json:"financialHealth"`
	BreakevenStatus string          `json:"breakevenStatus"`
	Payload         []byte          `json:"-"` // JSON-encoded full report
	CalculatedAt    time.Time       `json:"calculatedAt"`
}

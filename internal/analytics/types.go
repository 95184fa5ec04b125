// Package analytics turns raw expense and sale records into derived financial metrics.
//
// Every exported function is a pure, total function over its inputs: no I/O, no clock
// reads, no shared state. Division by zero resolves to a defined value instead of an
// error, and empty inputs produce zero-valued results. Callers materialize records
// first and re-invoke on change; there is no incremental mode.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

// FinancialHealth is the discrete profitability state of a book.
type FinancialHealth string

const (
	HealthExcellent FinancialHealth = "EXCELLENT"
	HealthGood      FinancialHealth = "GOOD"
	HealthBreakEven FinancialHealth = "BREAK_EVEN"
	HealthLoss      FinancialHealth = "LOSS"
	HealthCritical  FinancialHealth = "CRITICAL"
)

// Coarse break-even states reported alongside the granular progress percentage.
const (
	StatusRecouped      = "Recouped"
	StatusStillNegative = "Still Negative"
)

// InvestmentBreakdown groups a book's expenses into reporting buckets.
type InvestmentBreakdown struct {
	Total           decimal.Decimal `json:"total"`
	PublisherFees   decimal.Decimal `json:"publisherFees"`
	IllustratorFees decimal.Decimal `json:"illustratorFees"`
	Editing         decimal.Decimal `json:"editing"`
	Marketing       decimal.Decimal `json:"marketing"`
	Production      decimal.Decimal `json:"production"`
	Other           decimal.Decimal `json:"other"`
}

// RevenueAnalysis summarizes sales per channel plus royalty and fee totals.
type RevenueAnalysis struct {
	Total              decimal.Decimal `json:"total"`
	PublisherSales     decimal.Decimal `json:"publisherSales"`
	DirectSales        decimal.Decimal `json:"directSales"`
	OnlineStoreSales   decimal.Decimal `json:"onlineStoreSales"`
	OtherSales         decimal.Decimal `json:"otherSales"`
	AverageRoyaltyRate decimal.Decimal `json:"averageRoyaltyRate"`
	TotalRoyalties     decimal.Decimal `json:"totalRoyalties"`
	TotalPublisherCut  decimal.Decimal `json:"totalPublisherCut"`
	TotalPlatformFees  decimal.Decimal `json:"totalPlatformFees"`
	TotalDonations     decimal.Decimal `json:"totalDonations"`
}

// BreakEvenAnalysis describes how far sales have gone toward recouping the investment.
type BreakEvenAnalysis struct {
	BreakEvenQuantity int             `json:"breakEvenQuantity"`
	BreakEvenRevenue  decimal.Decimal `json:"breakEvenRevenue"`
	UnitsSoldSoFar    int             `json:"unitsSoldSoFar"`
	RemainingUnits    int             `json:"remainingUnits"`
	AverageSalePrice  decimal.Decimal `json:"averageSalePrice"`
	ProgressPercent   decimal.Decimal `json:"progressPercent"` // 0..100
}

// Profitability holds net profit, ROI and margin for a pair of totals.
type Profitability struct {
	NetProfit       decimal.Decimal `json:"netProfit"`
	ROIPercentage   decimal.Decimal `json:"roiPercentage"`
	ProfitMargin    decimal.Decimal `json:"profitMargin"`
	BreakevenStatus string          `json:"breakevenStatus"`
}

// Totals is the lightweight dashboard summary.
type Totals struct {
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	BreakevenStatus string          `json:"breakevenStatus"`
	ExpenseCount    int             `json:"expenseCount"`
	SaleCount       int             `json:"saleCount"`
}

// ChannelShare is one sale channel's revenue and its share of total sales.
type ChannelShare struct {
	Channel     model.SaleType  `json:"channel"`
	Label       string          `json:"label"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// CategoryAmount is one expense category's total and its share of all expenses.
type CategoryAmount struct {
	Category   model.ExpenseCategory `json:"category"`
	Label      string                `json:"label"`
	Amount     decimal.Decimal       `json:"amount"`
	Percentage decimal.Decimal       `json:"percentage"`
}

// MonthlyAmount holds expense and sale totals for one calendar month ("Jan 2006").
type MonthlyAmount struct {
	Month    string          `json:"month"`
	Expenses decimal.Decimal `json:"expenses"`
	Sales    decimal.Decimal `json:"sales"`
}

// PlatformAmount is the units and revenue summed for one platform name.
type PlatformAmount struct {
	Platform string          `json:"platform"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// PlatformPerformance ranks platforms. Empty names mean there were no sales.
type PlatformPerformance struct {
	BestByRevenue   string           `json:"bestByRevenue"`
	WorstByRevenue  string           `json:"worstByRevenue"`
	BestByQuantity  string           `json:"bestByQuantity"`
	WorstByQuantity string           `json:"worstByQuantity"`
	Platforms       []PlatformAmount `json:"platforms"`
}

// AuthorFinancialAnalytics is the full per-book snapshot consumed by dashboards and exports.
type AuthorFinancialAnalytics struct {
	BookID      string    `json:"bookId"`
	BookTitle   string    `json:"bookTitle"`
	GeneratedAt time.Time `json:"generatedAt"`

	TotalInvestment decimal.Decimal `json:"totalInvestment"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	ROIPercentage   decimal.Decimal `json:"roiPercentage"`
	ProfitMargin    decimal.Decimal `json:"profitMargin"`
	BreakevenStatus string          `json:"breakevenStatus"`

	Investment      InvestmentBreakdown `json:"investment"`
	Revenue         RevenueAnalysis     `json:"revenue"`
	BreakEven       BreakEvenAnalysis   `json:"breakEven"`
	Health          FinancialHealth     `json:"financialHealth"`
	Recommendations []string            `json:"recommendations"`

	ExpenseCount     int             `json:"expenseCount"`
	SaleCount        int             `json:"saleCount"`
	GiveawayCount    int             `json:"giveawayCount"`
	TotalUnitsSold   int             `json:"totalUnitsSold"`
	AverageSalePrice decimal.Decimal `json:"averageSalePrice"`

	Platforms     PlatformPerformance `json:"platforms"`
	Channels      []ChannelShare      `json:"channels"`
	Categories    []CategoryAmount    `json:"categories"`    // every category, enumeration order
	CategoryChart []CategoryAmount    `json:"categoryChart"` // non-zero only, largest first
	Monthly       []MonthlyAmount     `json:"monthly"`

	DaysSinceLaunch int  `json:"daysSinceLaunch"`
	DaysToBreakEven *int `json:"daysToBreakEven,omitempty"` // nil until recouped
}

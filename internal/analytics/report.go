package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

const msPerDay = int64(24 * time.Hour / time.Millisecond)

// ComputeReport assembles the full analytics snapshot for one book.
//
// The expense and sale slices must already be filtered to the book. now is the reference
// instant for elapsed-time metrics and GeneratedAt; the function never reads the clock,
// so identical inputs always produce identical output.
//
// Calculation order follows the data dependencies:
// aggregation -> break-even and profitability -> health -> recommendations.
func ComputeReport(book model.Book, expenses []model.Expense, sales []model.Sale, now time.Time) AuthorFinancialAnalytics {
	investment := BuildInvestmentBreakdown(expenses)
	revenue := BuildRevenueAnalysis(sales)
	units := TotalQuantity(sales)

	breakEven := CalculateBreakEven(investment.Total, revenue.Total, units)
	profit := CalculateProfitability(investment.Total, revenue.Total)
	health := ClassifyHealth(profit.NetProfit, profit.ROIPercentage)
	recs := Recommend(health, profit.ROIPercentage, breakEven.ProgressPercent, profit.NetProfit)

	return AuthorFinancialAnalytics{
		BookID:      book.ID,
		BookTitle:   book.Title,
		GeneratedAt: now,

		TotalInvestment: investment.Total,
		TotalRevenue:    revenue.Total,
		NetProfit:       profit.NetProfit,
		ROIPercentage:   profit.ROIPercentage,
		ProfitMargin:    profit.ProfitMargin,
		BreakevenStatus: profit.BreakevenStatus,

		Investment:      investment,
		Revenue:         revenue,
		BreakEven:       breakEven,
		Health:          health,
		Recommendations: recs,

		ExpenseCount:     len(expenses),
		SaleCount:        len(sales),
		GiveawayCount:    GiveawayCount(sales),
		TotalUnitsSold:   units,
		AverageSalePrice: breakEven.AverageSalePrice,

		Platforms:     RankPlatforms(sales),
		Channels:      ComputeChannelBreakdown(sales),
		Categories:    ExpenseCategoryReport(expenses),
		CategoryChart: ExpenseCategoryChart(expenses),
		Monthly:       MonthlyTotals(expenses, sales),

		DaysSinceLaunch: DaysBetween(book.LaunchDate, now),
		DaysToBreakEven: daysToBreakEven(book.LaunchDate, investment.Total, sales),
	}
}

// ComputeTotals is the lightweight dashboard variant: totals, net profit and the coarse
// break-even status only.
func ComputeTotals(expenses []model.Expense, sales []model.Sale) Totals {
	totalExpenses := TotalExpenses(expenses)
	totalIncome := TotalSales(sales)

	return Totals{
		TotalExpenses:   totalExpenses,
		TotalIncome:     totalIncome,
		NetProfit:       totalIncome.Sub(totalExpenses),
		BreakevenStatus: BreakevenStatus(totalExpenses, totalIncome),
		ExpenseCount:    len(expenses),
		SaleCount:       len(sales),
	}
}

// ComputeChannelBreakdown returns each channel with a positive total and its share of all
// sales, in channel enumeration order. With no sales revenue the result is empty.
func ComputeChannelBreakdown(sales []model.Sale) []ChannelShare {
	shares := []ChannelShare{}

	total := TotalSales(sales)
	if !total.IsPositive() {
		return shares
	}

	sums := SalesByType(sales)
	for _, t := range model.SaleTypes {
		amount := sums[t]
		if !amount.IsPositive() {
			continue
		}
		shares = append(shares, ChannelShare{
			Channel:     t,
			Label:       t.Label(),
			TotalAmount: amount,
			Percentage:  percentOf(amount, total),
		})
	}

	return shares
}

// RankPlatforms picks the best and worst platforms by revenue and by units.
// On equal sums the platform encountered first in sale order wins.
func RankPlatforms(sales []model.Sale) PlatformPerformance {
	platforms := SalesByPlatform(sales)
	perf := PlatformPerformance{Platforms: platforms}
	if len(platforms) == 0 {
		return perf
	}

	bestRev, worstRev, bestQty, worstQty := platforms[0], platforms[0], platforms[0], platforms[0]
	for _, p := range platforms[1:] {
		if p.Revenue.GreaterThan(bestRev.Revenue) {
			bestRev = p
		}
		if p.Revenue.LessThan(worstRev.Revenue) {
			worstRev = p
		}
		if p.Quantity > bestQty.Quantity {
			bestQty = p
		}
		if p.Quantity < worstQty.Quantity {
			worstQty = p
		}
	}

	perf.BestByRevenue = bestRev.Platform
	perf.WorstByRevenue = worstRev.Platform
	perf.BestByQuantity = bestQty.Platform
	perf.WorstByQuantity = worstQty.Platform
	return perf
}

// DaysBetween counts whole days from one instant to another as
// floor((to - from) / 86 400 000 ms). A zero from returns 0.
func DaysBetween(from, to time.Time) int {
	if from.IsZero() {
		return 0
	}
	ms := to.Sub(from).Milliseconds()
	days := ms / msPerDay
	if ms%msPerDay != 0 && ms < 0 {
		days--
	}
	return int(days)
}

// daysToBreakEven walks sales chronologically and returns the days from launch to the
// first sale at which cumulative revenue covers the investment. Nil if that never happens.
func daysToBreakEven(launch time.Time, investment decimal.Decimal, sales []model.Sale) *int {
	if !investment.IsPositive() {
		zero := 0
		return &zero
	}

	ordered := slices.Clone(sales)
	slices.SortStableFunc(ordered, func(a, b model.Sale) int {
		return a.Date.Compare(b.Date)
	})

	cumulative := decimal.Zero
	for _, s := range ordered {
		cumulative = cumulative.Add(s.TotalAmount)
		if cumulative.GreaterThanOrEqual(investment) {
			days := max(DaysBetween(launch, s.Date), 0)
			return &days
		}
	}
	return nil
}

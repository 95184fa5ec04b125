package analytics

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

var (
	launch = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	book   = model.Book{ID: "book-1", Title: "The Lighthouse Keeper", LaunchDate: launch}
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(amount string, category model.ExpenseCategory) model.Expense {
	return model.Expense{Amount: d(amount), Category: category, Date: launch}
}

func sale(quantity int, total string, saleType model.SaleType) model.Sale {
	return model.Sale{Quantity: quantity, TotalAmount: d(total), Type: saleType, Date: launch}
}

func TestComputeReport_Scenarios(t *testing.T) {
	t.Run("A: revenue equals investment", func(t *testing.T) {
		expenses := []model.Expense{expense("500", model.ExpensePrintingCosts)}
		sales := []model.Sale{sale(100, "500", model.SaleDirect)}

		r := ComputeReport(book, expenses, sales, now)

		assert.True(t, r.NetProfit.IsZero(), "netProfit = %s", r.NetProfit)
		assert.True(t, r.ROIPercentage.IsZero(), "roi = %s", r.ROIPercentage)
		assert.Equal(t, StatusRecouped, r.BreakevenStatus)
		assert.Equal(t, HealthBreakEven, r.Health)
		assert.Equal(t, 100, r.BreakEven.BreakEvenQuantity)
		assert.True(t, r.BreakEven.ProgressPercent.Equal(hundred))
	})

	t.Run("B: loss of exactly 1000 is LOSS", func(t *testing.T) {
		expenses := []model.Expense{expense("1000", model.ExpenseOther)}

		r := ComputeReport(book, expenses, nil, now)

		assert.True(t, r.NetProfit.Equal(d("-1000")))
		assert.Equal(t, HealthLoss, r.Health)
		assert.Equal(t, StatusStillNegative, r.BreakevenStatus)
		assert.True(t, r.BreakEven.ProgressPercent.IsZero())
		assert.Nil(t, r.DaysToBreakEven)
	})

	t.Run("C: floor of break-even quantity", func(t *testing.T) {
		expenses := []model.Expense{expense("1000", model.ExpenseMarketing)}
		sales := []model.Sale{sale(10, "1100", model.SaleOnlineStore)}

		r := ComputeReport(book, expenses, sales, now)

		assert.Equal(t, 9, r.BreakEven.BreakEvenQuantity)
		assert.True(t, r.BreakEven.ProgressPercent.Equal(hundred))
		assert.Equal(t, 0, r.BreakEven.RemainingUnits)
		assert.Equal(t, StatusRecouped, r.BreakevenStatus)
	})

	t.Run("D: no records", func(t *testing.T) {
		r := ComputeReport(book, nil, nil, now)

		assert.True(t, r.TotalInvestment.IsZero())
		assert.True(t, r.TotalRevenue.IsZero())
		assert.True(t, r.NetProfit.IsZero())
		assert.Empty(t, r.Channels)
		assert.NotNil(t, r.Channels)
		assert.Equal(t, HealthBreakEven, r.Health)
		assert.Len(t, r.Recommendations, 2)
		require.NotNil(t, r.DaysToBreakEven)
		assert.Equal(t, 0, *r.DaysToBreakEven)
	})
}

func TestComputeReport_Extras(t *testing.T) {
	expenses := []model.Expense{
		expense("300", model.ExpensePrintingCosts),
		expense("200", model.ExpenseIllustratorFees),
	}
	sales := []model.Sale{
		{Platform: "Amazon", Quantity: 10, TotalAmount: d("150"), Type: model.SaleOnlineStore, Date: launch.AddDate(0, 0, 10)},
		{Platform: "Fair", Quantity: 20, TotalAmount: d("200"), Type: model.SaleDirect, Date: launch.AddDate(0, 0, 40)},
		{Platform: "Amazon", Quantity: 5, TotalAmount: d("200"), Type: model.SaleOnlineStore, Date: launch.AddDate(0, 0, 25)},
		{Platform: "Library", Quantity: 1, TotalAmount: d("0"), Type: model.SaleOther, IsGiveaway: true, Date: launch.AddDate(0, 0, 50)},
	}

	r := ComputeReport(book, expenses, sales, now)

	assert.Equal(t, 365, r.DaysSinceLaunch)
	require.NotNil(t, r.DaysToBreakEven)
	// 150 (day 10) + 200 (day 25) = 350, + 200 (day 40) = 550 >= 500
	assert.Equal(t, 40, *r.DaysToBreakEven)
	assert.Equal(t, 1, r.GiveawayCount)
	assert.Equal(t, 36, r.TotalUnitsSold)
	assert.Equal(t, "Amazon", r.Platforms.BestByRevenue)
	assert.Equal(t, "Library", r.Platforms.WorstByRevenue)
	assert.Equal(t, "Fair", r.Platforms.BestByQuantity)
	assert.Equal(t, "Library", r.Platforms.WorstByQuantity)
	assert.Equal(t, now, r.GeneratedAt)
	assert.Equal(t, HealthGood, r.Health)

	require.Len(t, r.Categories, len(model.ExpenseCategories))
	for i, c := range r.Categories {
		assert.Equal(t, model.ExpenseCategories[i], c.Category)
	}
	assert.True(t, r.Categories[0].Amount.Equal(d("300")))
	assert.True(t, r.Categories[3].Amount.IsZero())

	require.Len(t, r.CategoryChart, 2)
	assert.Equal(t, model.ExpensePrintingCosts, r.CategoryChart[0].Category)
	assert.Equal(t, model.ExpenseIllustratorFees, r.CategoryChart[1].Category)
}

func TestComputeReport_Idempotent(t *testing.T) {
	expenses := []model.Expense{expense("123.45", model.ExpenseEditingServices), expense("10", model.ExpenseWebsite)}
	sales := []model.Sale{sale(3, "44.97", model.SalePublisher), sale(7, "70", model.SaleDirect)}

	first := ComputeReport(book, expenses, sales, now)
	second := ComputeReport(book, expenses, sales, now)

	assert.Equal(t, first, second)
}

func TestComputeTotals(t *testing.T) {
	t.Run("sums exactly without rounding", func(t *testing.T) {
		expenses := []model.Expense{
			expense("0.1", model.ExpenseOther),
			expense("0.2", model.ExpenseOther),
			expense("19.999", model.ExpenseOther),
		}
		sales := []model.Sale{sale(1, "5.005", model.SaleDirect)}

		totals := ComputeTotals(expenses, sales)

		assert.True(t, totals.TotalExpenses.Equal(d("20.299")), "got %s", totals.TotalExpenses)
		assert.True(t, totals.TotalIncome.Equal(d("5.005")))
		assert.True(t, totals.NetProfit.Equal(d("-15.294")))
		assert.Equal(t, StatusStillNegative, totals.BreakevenStatus)
		assert.Equal(t, 3, totals.ExpenseCount)
		assert.Equal(t, 1, totals.SaleCount)
	})

	t.Run("empty input is recouped at zero", func(t *testing.T) {
		totals := ComputeTotals(nil, nil)

		assert.True(t, totals.TotalExpenses.IsZero())
		assert.True(t, totals.NetProfit.IsZero())
		assert.Equal(t, StatusRecouped, totals.BreakevenStatus)
	})
}

func TestComputeChannelBreakdown(t *testing.T) {
	t.Run("omits zero channels and computes shares", func(t *testing.T) {
		sales := []model.Sale{
			sale(1, "75", model.SaleOnlineStore),
			sale(1, "25", model.SalePublisher),
			sale(1, "0", model.SaleDirect),
		}

		shares := ComputeChannelBreakdown(sales)

		require.Len(t, shares, 2)
		assert.Equal(t, model.SalePublisher, shares[0].Channel)
		assert.True(t, shares[0].Percentage.Equal(d("25")))
		assert.Equal(t, model.SaleOnlineStore, shares[1].Channel)
		assert.Equal(t, "Online Store", shares[1].Label)
		assert.True(t, shares[1].Percentage.Equal(d("75")))
	})

	t.Run("zero total sales yields empty list", func(t *testing.T) {
		shares := ComputeChannelBreakdown([]model.Sale{sale(4, "0", model.SaleDirect)})

		assert.NotNil(t, shares)
		assert.Empty(t, shares)
	})

	t.Run("unknown sale type is counted as OTHER", func(t *testing.T) {
		shares := ComputeChannelBreakdown([]model.Sale{sale(1, "10", model.SaleType("KIOSK"))})

		require.Len(t, shares, 1)
		assert.Equal(t, model.SaleOther, shares[0].Channel)
	})
}

func TestCalculateBreakEven(t *testing.T) {
	tests := []struct {
		name         string
		investment   string
		revenue      string
		units        int
		wantQuantity int
		wantProgress string
		wantRemain   int
	}{
		{"zero investment is fully recouped", "0", "0", 0, 0, "100", 0},
		{"zero investment with sales", "0", "50", 5, 0, "100", 0},
		{"halfway", "1000", "500", 50, 100, "50", 50},
		{"investment without sales", "250", "0", 0, 0, "0", 0},
		{"floor reaches units sold while short", "1000", "999", 10, 10, "99.9", 0},
		{"quarter", "400", "100", 10, 40, "25", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBreakEven(d(tt.investment), d(tt.revenue), tt.units)

			assert.Equal(t, tt.wantQuantity, got.BreakEvenQuantity)
			assert.True(t, got.ProgressPercent.Equal(d(tt.wantProgress)), "progress = %s", got.ProgressPercent)
			assert.Equal(t, tt.wantRemain, got.RemainingUnits)
			assert.True(t, got.BreakEvenRevenue.Equal(d(tt.investment)))
		})
	}

	t.Run("quantity beyond int range saturates", func(t *testing.T) {
		for _, investment := range []string{"92233720368547758.08", "100000000000000000000"} {
			got := CalculateBreakEven(d(investment), d("0.01"), 1)

			assert.Equal(t, math.MaxInt, got.BreakEvenQuantity, "investment %s", investment)
			assert.Equal(t, math.MaxInt-1, got.RemainingUnits, "investment %s", investment)
			assert.False(t, got.ProgressPercent.IsNegative())
			assert.True(t, got.ProgressPercent.LessThan(d("100")), "progress = %s", got.ProgressPercent)
		}
	})

	t.Run("huge investment through the report", func(t *testing.T) {
		r := ComputeReport(book,
			[]model.Expense{expense("92233720368547758.08", model.ExpenseMarketing)},
			[]model.Sale{sale(1, "0.01", model.SaleDirect)}, now)

		assert.Equal(t, math.MaxInt, r.BreakEven.BreakEvenQuantity)
		assert.GreaterOrEqual(t, r.BreakEven.RemainingUnits, 0)
		assert.Equal(t, HealthCritical, r.Health)
	})
}

func TestCalculateProfitability(t *testing.T) {
	p := CalculateProfitability(d("200"), d("500"))
	assert.True(t, p.NetProfit.Equal(d("300")))
	assert.True(t, p.ROIPercentage.Equal(d("150")))
	assert.True(t, p.ProfitMargin.Equal(d("60")))
	assert.Equal(t, StatusRecouped, p.BreakevenStatus)

	zero := CalculateProfitability(decimal.Zero, d("80"))
	assert.True(t, zero.ROIPercentage.IsZero())
	assert.True(t, zero.ProfitMargin.Equal(hundred))

	noRevenue := CalculateProfitability(d("80"), decimal.Zero)
	assert.True(t, noRevenue.ProfitMargin.IsZero())
	assert.True(t, noRevenue.ROIPercentage.Equal(d("-100")))
}

func TestClassifyHealth(t *testing.T) {
	tests := []struct {
		netProfit string
		roi       string
		want      FinancialHealth
	}{
		{"100", "50.1", HealthExcellent},
		{"100", "50", HealthGood},
		{"1", "0.01", HealthGood},
		{"1", "0", HealthBreakEven},
		{"0", "0", HealthBreakEven},
		{"-0.01", "-0.1", HealthLoss},
		{"-999.99", "-99", HealthLoss},
		{"-1000", "-100", HealthLoss},
		{"-1000.01", "-100", HealthCritical},
	}

	for _, tt := range tests {
		t.Run(tt.netProfit+"/"+tt.roi, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyHealth(d(tt.netProfit), d(tt.roi)))
		})
	}
}

func TestRecommend(t *testing.T) {
	t.Run("base messages only", func(t *testing.T) {
		base := healthRecommendations[HealthExcellent]
		recs := Recommend(HealthExcellent, d("80"), d("100"), d("500"))
		assert.Equal(t, base[:], recs)
	})

	t.Run("low progress then negative roi, in order", func(t *testing.T) {
		recs := Recommend(HealthLoss, d("-20"), d("10"), d("-200"))

		require.Len(t, recs, 4)
		assert.Equal(t, healthRecommendations[HealthLoss][0], recs[0])
		assert.Contains(t, recs[2], "break-even target")
		assert.Contains(t, recs[3], "Return on investment is negative")
	})

	t.Run("every health state yields two distinct base messages", func(t *testing.T) {
		for _, h := range []FinancialHealth{HealthExcellent, HealthGood, HealthBreakEven, HealthLoss, HealthCritical} {
			recs := Recommend(h, decimal.Zero, hundred, decimal.Zero)
			require.Len(t, recs, 2, string(h))
			assert.NotEqual(t, recs[0], recs[1])
		}
	})
}

func TestMonthlyTotals_ChronologicalOrder(t *testing.T) {
	expenses := []model.Expense{
		{Amount: d("10"), Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Amount: d("5"), Date: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
	}
	sales := []model.Sale{
		{TotalAmount: d("7"), Date: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{TotalAmount: d("3"), Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	months := MonthlyTotals(expenses, sales)

	require.Len(t, months, 3)
	assert.Equal(t, "Feb 2024", months[0].Month)
	assert.Equal(t, "Dec 2024", months[1].Month)
	assert.Equal(t, "Jan 2025", months[2].Month)
	assert.True(t, months[2].Expenses.Equal(d("10")))
	assert.True(t, months[2].Sales.Equal(d("3")))
}

func TestGroupings_UnknownEnumsFallIntoOther(t *testing.T) {
	expenses := []model.Expense{
		expense("40", model.ExpenseCategory("AUDIOBOOK_NARRATION")),
		expense("60", model.ExpenseOther),
		expense("25", model.ExpenseProofreading),
	}

	byCategory := ExpensesByCategory(expenses)
	assert.True(t, byCategory[model.ExpenseOther].Equal(d("100")))

	breakdown := BuildInvestmentBreakdown(expenses)
	assert.True(t, breakdown.Other.Equal(d("100")))
	assert.True(t, breakdown.Editing.Equal(d("25")))
	assert.True(t, breakdown.Total.Equal(d("125")))

	report := ExpenseCategoryReport(expenses)
	assert.Len(t, report, len(model.ExpenseCategories))

	chart := ExpenseCategoryChart(expenses)
	require.Len(t, chart, 2)
	assert.Equal(t, model.ExpenseOther, chart[0].Category)
	assert.True(t, chart[0].Percentage.Equal(d("80")))
}

func TestBuildRevenueAnalysis(t *testing.T) {
	sales := []model.Sale{
		{Type: model.SalePublisher, TotalAmount: d("100"), RoyaltyRate: decimal.NewNullDecimal(d("10")), RoyaltyAmount: decimal.NewNullDecimal(d("10")), PublisherCut: d("40")},
		{Type: model.SaleOnlineStore, TotalAmount: d("50"), RoyaltyRate: decimal.NewNullDecimal(d("70")), PlatformFees: d("15")},
		{Type: model.SaleDirect, TotalAmount: d("20"), DonationAmount: d("5")},
	}

	r := BuildRevenueAnalysis(sales)

	assert.True(t, r.Total.Equal(d("170")))
	assert.True(t, r.PublisherSales.Equal(d("100")))
	assert.True(t, r.OnlineStoreSales.Equal(d("50")))
	assert.True(t, r.DirectSales.Equal(d("20")))
	assert.True(t, r.AverageRoyaltyRate.Equal(d("40")))
	assert.True(t, r.TotalRoyalties.Equal(d("10")))
	assert.True(t, r.TotalPublisherCut.Equal(d("40")))
	assert.True(t, r.TotalPlatformFees.Equal(d("15")))
	assert.True(t, r.TotalDonations.Equal(d("5")))
}

func TestRankPlatforms_TieKeepsFirstEncountered(t *testing.T) {
	sales := []model.Sale{
		{Platform: "Etsy", Quantity: 5, TotalAmount: d("50")},
		{Platform: "Shop", Quantity: 5, TotalAmount: d("50")},
		{Platform: " ", Quantity: 5, TotalAmount: d("50")},
	}

	perf := RankPlatforms(sales)

	assert.Equal(t, "Etsy", perf.BestByRevenue)
	assert.Equal(t, "Etsy", perf.WorstByRevenue)
	assert.Equal(t, "Etsy", perf.BestByQuantity)
	assert.Equal(t, "Etsy", perf.WorstByQuantity)
	require.Len(t, perf.Platforms, 3)
	assert.Equal(t, unspecifiedPlatform, perf.Platforms[2].Platform)
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(base, base.Add(23*time.Hour)))
	assert.Equal(t, 1, DaysBetween(base, base.Add(24*time.Hour)))
	assert.Equal(t, -1, DaysBetween(base, base.Add(-time.Hour)))
	assert.Equal(t, 0, DaysBetween(time.Time{}, base))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 12.35, RoundCurrency(d("12.345")))
	assert.Equal(t, -12.35, RoundCurrency(d("-12.345")))
	assert.Equal(t, 33.3, RoundPercent(d("33.3333")))
	assert.Equal(t, 0.0, RoundPercent(decimal.Zero))
}

// TestProperties checks the cross-cutting invariants over generated record sets.
func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	for i := 0; i < 500; i++ {
		expenses := make([]model.Expense, rng.IntN(4))
		for j := range expenses {
			expenses[j] = expense(decimal.NewFromInt(rng.Int64N(200000)).Shift(-2).String(), model.ExpenseCategories[rng.IntN(len(model.ExpenseCategories))])
		}
		sales := make([]model.Sale, rng.IntN(4))
		for j := range sales {
			sales[j] = sale(1+rng.IntN(50), decimal.NewFromInt(rng.Int64N(200000)).Shift(-2).String(), model.SaleTypes[rng.IntN(len(model.SaleTypes))])
		}

		r := ComputeReport(book, expenses, sales, now)

		// Break-even status and progress agree.
		recouped := r.BreakevenStatus == StatusRecouped
		assert.Equal(t, recouped, r.BreakEven.ProgressPercent.GreaterThanOrEqual(hundred),
			"investment=%s revenue=%s units=%d progress=%s", r.TotalInvestment, r.TotalRevenue, r.TotalUnitsSold, r.BreakEven.ProgressPercent)

		// Non-negativity and bounds.
		assert.GreaterOrEqual(t, r.BreakEven.BreakEvenQuantity, 0)
		assert.GreaterOrEqual(t, r.BreakEven.RemainingUnits, 0)
		assert.False(t, r.BreakEven.ProgressPercent.IsNegative())
		assert.True(t, r.BreakEven.ProgressPercent.LessThanOrEqual(hundred))

		// Additivity.
		sum := decimal.Zero
		for _, e := range expenses {
			sum = sum.Add(e.Amount)
		}
		assert.True(t, r.TotalInvestment.Equal(sum))

		// Zero-safety.
		if r.TotalInvestment.IsZero() {
			assert.True(t, r.ROIPercentage.IsZero())
			assert.Contains(t, []FinancialHealth{HealthBreakEven, HealthGood, HealthExcellent}, r.Health)
		}

		assert.GreaterOrEqual(t, len(r.Recommendations), 2)
		assert.LessOrEqual(t, len(r.Recommendations), 4)
	}
}

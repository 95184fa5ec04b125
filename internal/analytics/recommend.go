package analytics

import "github.com/shopspring/decimal"

var lowProgressThreshold = decimal.NewFromInt(50)

var healthRecommendations = map[FinancialHealth][2]string{
	HealthExcellent: {
		"Excellent performance: this book returns more than half of its investment on top of costs.",
		"Consider reinvesting profits into a sequel, a new format or a wider marketing push.",
	},
	HealthGood: {
		"The book is profitable with a positive return on investment.",
		"Look for the channels with the best margins and shift promotion toward them.",
	},
	HealthBreakEven: {
		"Revenue currently covers the investment with no profit margin yet.",
		"Focus on low-cost promotion to move from break-even into profit.",
	},
	HealthLoss: {
		"The book has not yet recouped its investment.",
		"Review recurring expenses and pause the least effective marketing spend.",
	},
	HealthCritical: {
		"Losses exceed 1,000 and need attention.",
		"Stop non-essential spending and reassess pricing, print runs and distribution costs.",
	},
}

// Recommend builds advisory messages for a book. The two messages for the health state
// come first, followed by a break-even hint when progress is below 50% and a pricing hint
// when ROI is negative. The result always has between 2 and 4 entries.
func Recommend(health FinancialHealth, roiPercentage, breakEvenProgress, netProfit decimal.Decimal) []string {
	base, ok := healthRecommendations[health]
	if !ok {
		base = healthRecommendations[HealthBreakEven]
	}

	recs := make([]string, 0, 4)
	recs = append(recs, base[0], base[1])

	if breakEvenProgress.LessThan(lowProgressThreshold) {
		recs = append(recs, "Less than half of the break-even target has been sold; concentrate on sales volume before new spending.")
	}
	if roiPercentage.IsNegative() {
		recs = append(recs, "Return on investment is negative; revisit the cover price and per-channel fees.")
	}

	return recs
}

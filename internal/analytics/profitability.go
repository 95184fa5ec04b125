package analytics

import "github.com/shopspring/decimal"

// CalculateProfitability derives net profit, ROI and margin from investment and revenue totals.
// ROI is 0 without investment and margin is 0 without revenue, so classification stays total.
func CalculateProfitability(totalInvestment, totalRevenue decimal.Decimal) Profitability {
	netProfit := totalRevenue.Sub(totalInvestment)

	roi := decimal.Zero
	if totalInvestment.IsPositive() {
		roi = percentOf(netProfit, totalInvestment)
	}

	margin := decimal.Zero
	if totalRevenue.IsPositive() {
		margin = percentOf(netProfit, totalRevenue)
	}

	return Profitability{
		NetProfit:       netProfit,
		ROIPercentage:   roi,
		ProfitMargin:    margin,
		BreakevenStatus: BreakevenStatus(totalInvestment, totalRevenue),
	}
}

// BreakevenStatus is the coarse two-valued check: Recouped once revenue covers investment.
func BreakevenStatus(totalInvestment, totalRevenue decimal.Decimal) string {
	if totalRevenue.GreaterThanOrEqual(totalInvestment) {
		return StatusRecouped
	}
	return StatusStillNegative
}

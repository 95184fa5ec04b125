package analytics

import "github.com/shopspring/decimal"

var (
	excellentROIThreshold = decimal.NewFromInt(50)
	// criticalLossThreshold is an absolute currency amount, not a ratio.
	criticalLossThreshold = decimal.NewFromInt(-1000)
)

// ClassifyHealth maps net profit and ROI onto a FinancialHealth state. Rules are checked
// in order and the first match wins:
//
//	netProfit > 0 and roi > 50  EXCELLENT
//	netProfit > 0 and roi > 0   GOOD
//	netProfit >= 0              BREAK_EVEN
//	netProfit >= -1000          LOSS
//	otherwise                   CRITICAL
func ClassifyHealth(netProfit, roiPercentage decimal.Decimal) FinancialHealth {
	switch {
	case netProfit.IsPositive() && roiPercentage.GreaterThan(excellentROIThreshold):
		return HealthExcellent
	case netProfit.IsPositive() && roiPercentage.IsPositive():
		return HealthGood
	case !netProfit.IsNegative():
		return HealthBreakEven
	case netProfit.GreaterThanOrEqual(criticalLossThreshold):
		return HealthLoss
	default:
		return HealthCritical
	}
}

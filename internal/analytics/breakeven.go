package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

var maxQuantity = decimal.NewFromInt(math.MaxInt)

// CalculateBreakEven derives the break-even target from a single blended average sale
// price across all channels. Per-sale marginal cost is not tracked.
//
// Algorithm:
//  1. averageSalePrice = revenue / units, or 0 without units
//  2. breakEvenQuantity = floor(investment / averageSalePrice), or 0 without a price,
//     saturating at math.MaxInt
//  3. remainingUnits = max(0, breakEvenQuantity - units)
//  4. progressPercent = min(100, units / breakEvenQuantity * 100), or 100 when the
//     target is 0 (nothing to recoup)
//
// Progress of 100 always coincides with revenue >= investment. Where the formula reaches
// 100 while revenue is still short (no sales yet, or the floor in step 2 rounding the
// target down to the units already sold), progress falls back to revenue / investment * 100.
func CalculateBreakEven(totalInvestment, totalRevenue decimal.Decimal, totalUnitsSold int) BreakEvenAnalysis {
	avg := averagePrice(totalRevenue, totalUnitsSold)

	quantity := 0
	if avg.IsPositive() {
		// investment / (revenue / units) == investment * units / revenue, kept exact via QuoRem.
		q, _ := totalInvestment.Mul(decimal.NewFromInt(int64(totalUnitsSold))).QuoRem(totalRevenue, 0)
		switch {
		case q.GreaterThan(maxQuantity):
			quantity = math.MaxInt
		case q.IsPositive():
			quantity = int(q.IntPart())
		}
	}

	remaining := quantity - totalUnitsSold
	if remaining < 0 {
		remaining = 0
	}

	progress := hundred
	if quantity > 0 {
		progress = decimal.Min(hundred, percentOf(decimal.NewFromInt(int64(totalUnitsSold)), decimal.NewFromInt(int64(quantity))))
	}
	if progress.GreaterThanOrEqual(hundred) && totalRevenue.LessThan(totalInvestment) {
		progress = decimal.Max(decimal.Zero, percentOf(totalRevenue, totalInvestment))
	}
	if progress.IsNegative() {
		progress = decimal.Zero
	}

	return BreakEvenAnalysis{
		BreakEvenQuantity: quantity,
		BreakEvenRevenue:  totalInvestment,
		UnitsSoldSoFar:    totalUnitsSold,
		RemainingUnits:    remaining,
		AverageSalePrice:  avg,
		ProgressPercent:   progress,
	}
}

package analytics

import "github.com/shopspring/decimal"

// Display precision for report consumers. Calculations stay exact; rounding happens only
// when values leave the service.
const (
	CurrencyPlaces = 2
	PercentPlaces  = 1
)

// RoundCurrency rounds a monetary value to 2 decimal places (half away from zero).
func RoundCurrency(d decimal.Decimal) float64 {
	return d.Round(CurrencyPlaces).InexactFloat64()
}

// RoundPercent rounds a percentage to 1 decimal place (half away from zero).
func RoundPercent(d decimal.Decimal) float64 {
	return d.Round(PercentPlaces).InexactFloat64()
}

package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

// investmentBucket maps each expense category onto an InvestmentBreakdown field.
type investmentBucket int

const (
	bucketOther investmentBucket = iota
	bucketPublisher
	bucketIllustrator
	bucketEditing
	bucketMarketing
	bucketProduction
)

var categoryBuckets = map[model.ExpenseCategory]investmentBucket{
	model.ExpensePublisherFees:        bucketPublisher,
	model.ExpenseIllustratorFees:      bucketIllustrator,
	model.ExpenseCoverDesign:          bucketIllustrator,
	model.ExpenseEditingServices:      bucketEditing,
	model.ExpenseProofreading:         bucketEditing,
	model.ExpenseFormatting:           bucketEditing,
	model.ExpenseMarketing:            bucketMarketing,
	model.ExpenseAdvertising:          bucketMarketing,
	model.ExpenseBookTours:            bucketMarketing,
	model.ExpenseEvents:               bucketMarketing,
	model.ExpensePromotionalMaterials: bucketMarketing,
	model.ExpenseWebsite:              bucketMarketing,
	model.ExpensePrintingCosts:        bucketProduction,
	model.ExpenseShippingCosts:        bucketProduction,
	model.ExpenseInventory:            bucketProduction,
	model.ExpenseStorage:              bucketProduction,
	model.ExpenseISBNRegistration:     bucketProduction,
}

// BuildInvestmentBreakdown sums expenses into the reporting buckets. Categories without a
// bucket (OTHER and anything unrecognized) land in Other, so the buckets always add up to Total.
func BuildInvestmentBreakdown(expenses []model.Expense) InvestmentBreakdown {
	b := InvestmentBreakdown{
		Total:           decimal.Zero,
		PublisherFees:   decimal.Zero,
		IllustratorFees: decimal.Zero,
		Editing:         decimal.Zero,
		Marketing:       decimal.Zero,
		Production:      decimal.Zero,
		Other:           decimal.Zero,
	}

	for _, e := range expenses {
		b.Total = b.Total.Add(e.Amount)
		switch categoryBuckets[e.Category.Normalize()] {
		case bucketPublisher:
			b.PublisherFees = b.PublisherFees.Add(e.Amount)
		case bucketIllustrator:
			b.IllustratorFees = b.IllustratorFees.Add(e.Amount)
		case bucketEditing:
			b.Editing = b.Editing.Add(e.Amount)
		case bucketMarketing:
			b.Marketing = b.Marketing.Add(e.Amount)
		case bucketProduction:
			b.Production = b.Production.Add(e.Amount)
		default:
			b.Other = b.Other.Add(e.Amount)
		}
	}

	return b
}

// BuildRevenueAnalysis sums sales per channel and totals royalties and fees.
// AverageRoyaltyRate is the plain mean over sales that carry a royalty rate.
func BuildRevenueAnalysis(sales []model.Sale) RevenueAnalysis {
	r := RevenueAnalysis{
		Total:              decimal.Zero,
		PublisherSales:     decimal.Zero,
		DirectSales:        decimal.Zero,
		OnlineStoreSales:   decimal.Zero,
		OtherSales:         decimal.Zero,
		AverageRoyaltyRate: decimal.Zero,
		TotalRoyalties:     decimal.Zero,
		TotalPublisherCut:  decimal.Zero,
		TotalPlatformFees:  decimal.Zero,
		TotalDonations:     decimal.Zero,
	}

	rateSum := decimal.Zero
	rated := 0

	for _, s := range sales {
		r.Total = r.Total.Add(s.TotalAmount)
		switch s.Type.Normalize() {
		case model.SalePublisher:
			r.PublisherSales = r.PublisherSales.Add(s.TotalAmount)
		case model.SaleDirect:
			r.DirectSales = r.DirectSales.Add(s.TotalAmount)
		case model.SaleOnlineStore:
			r.OnlineStoreSales = r.OnlineStoreSales.Add(s.TotalAmount)
		default:
			r.OtherSales = r.OtherSales.Add(s.TotalAmount)
		}

		if s.RoyaltyRate.Valid {
			rateSum = rateSum.Add(s.RoyaltyRate.Decimal)
			rated++
		}
		if s.RoyaltyAmount.Valid {
			r.TotalRoyalties = r.TotalRoyalties.Add(s.RoyaltyAmount.Decimal)
		}
		r.TotalPublisherCut = r.TotalPublisherCut.Add(s.PublisherCut)
		r.TotalPlatformFees = r.TotalPlatformFees.Add(s.PlatformFees)
		r.TotalDonations = r.TotalDonations.Add(s.DonationAmount)
	}

	if rated > 0 {
		r.AverageRoyaltyRate = rateSum.Div(decimal.NewFromInt(int64(rated)))
	}

	return r
}

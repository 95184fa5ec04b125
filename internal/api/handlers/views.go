package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Author-Ledger-Backend/internal/analytics"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

// Records are returned with their stored precision; derived analytics are rounded to
// two decimals here and nowhere else.

const dateLayout = "2006-01-02"

// BookResponse represents a book in API responses.
type BookResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	LaunchDate  string `json:"launchDate"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	Illustrator string `json:"illustrator"`
	ISBN        string `json:"isbn"`
	Genre       string `json:"genre"`
	CreatedAt   string `json:"createdAt"`
}

func newBookResponse(b model.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		LaunchDate:  b.LaunchDate.Format(dateLayout),
		Description: b.Description,
		Author:      b.Author,
		Publisher:   b.Publisher,
		Illustrator: b.Illustrator,
		ISBN:        b.ISBN,
		Genre:       b.Genre,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

// ExpenseResponse represents an expense in API responses. BookID is null for unassigned expenses.
type ExpenseResponse struct {
	ID            string  `json:"id"`
	BookID        *string `json:"bookId"`
	Category      string  `json:"category"`
	CategoryLabel string  `json:"categoryLabel"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	CreatedAt     string  `json:"createdAt"`
}

func newExpenseResponse(e model.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:            e.ID,
		Category:      string(e.Category),
		CategoryLabel: e.Category.Label(),
		Amount:        e.Amount.InexactFloat64(),
		Description:   e.Description,
		Date:          e.Date.Format(dateLayout),
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
	if e.BookID != "" {
		bookID := e.BookID
		resp.BookID = &bookID
	}
	return resp
}

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID             string   `json:"id"`
	BookID         string   `json:"bookId"`
	Type           string   `json:"type"`
	TypeLabel      string   `json:"typeLabel"`
	Platform       string   `json:"platform"`
	Quantity       int      `json:"quantity"`
	UnitPrice      float64  `json:"unitPrice"`
	TotalAmount    float64  `json:"totalAmount"`
	DonationAmount float64  `json:"donationAmount"`
	IsGiveaway     bool     `json:"isGiveaway"`
	RoyaltyRate    *float64 `json:"royaltyRate"`
	RoyaltyAmount  *float64 `json:"royaltyAmount"`
	PublisherCut   float64  `json:"publisherCut"`
	PlatformFees   float64  `json:"platformFees"`
	Date           string   `json:"date"`
	CreatedAt      string   `json:"createdAt"`
}

func newSaleResponse(s model.Sale) SaleResponse {
	return SaleResponse{
		ID:             s.ID,
		BookID:         s.BookID,
		Type:           string(s.Type),
		TypeLabel:      s.Type.Label(),
		Platform:       s.Platform,
		Quantity:       s.Quantity,
		UnitPrice:      s.UnitPrice.InexactFloat64(),
		TotalAmount:    s.TotalAmount.InexactFloat64(),
		DonationAmount: s.DonationAmount.InexactFloat64(),
		IsGiveaway:     s.IsGiveaway,
		RoyaltyRate:    nullableFloat(s.RoyaltyRate),
		RoyaltyAmount:  nullableFloat(s.RoyaltyAmount),
		PublisherCut:   s.PublisherCut.InexactFloat64(),
		PlatformFees:   s.PlatformFees.InexactFloat64(),
		Date:           s.Date.Format(dateLayout),
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
	}
}

func nullableFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

// TotalsResponse represents the lightweight totals of a book or of the whole catalogue.
type TotalsResponse struct {
	TotalExpenses   float64 `json:"totalExpenses"`
	TotalIncome     float64 `json:"totalIncome"`
	NetProfit       float64 `json:"netProfit"`
	BreakevenStatus string  `json:"breakevenStatus"`
	ExpenseCount    int     `json:"expenseCount"`
	SaleCount       int     `json:"saleCount"`
}

func newTotalsResponse(t analytics.Totals) TotalsResponse {
	return TotalsResponse{
		TotalExpenses:   analytics.RoundCurrency(t.TotalExpenses),
		TotalIncome:     analytics.RoundCurrency(t.TotalIncome),
		NetProfit:       analytics.RoundCurrency(t.NetProfit),
		BreakevenStatus: t.BreakevenStatus,
		ExpenseCount:    t.ExpenseCount,
		SaleCount:       t.SaleCount,
	}
}

type ChannelResponse struct {
	Channel     string  `json:"channel"`
	Label       string  `json:"label"`
	TotalAmount float64 `json:"totalAmount"`
	Percentage  float64 `json:"percentage"`
}

func newChannelResponses(channels []analytics.ChannelShare) []ChannelResponse {
	resp := make([]ChannelResponse, len(channels))
	for i, c := range channels {
		resp[i] = ChannelResponse{
			Channel:     string(c.Channel),
			Label:       c.Label,
			TotalAmount: analytics.RoundCurrency(c.TotalAmount),
			Percentage:  analytics.RoundPercent(c.Percentage),
		}
	}
	return resp
}

type CategoryResponse struct {
	Category   string  `json:"category"`
	Label      string  `json:"label"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type MonthlyResponse struct {
	Month    string  `json:"month"`
	Expenses float64 `json:"expenses"`
	Sales    float64 `json:"sales"`
}

func newMonthlyResponses(months []analytics.MonthlyAmount) []MonthlyResponse {
	resp := make([]MonthlyResponse, len(months))
	for i, m := range months {
		resp[i] = MonthlyResponse{
			Month:    m.Month,
			Expenses: analytics.RoundCurrency(m.Expenses),
			Sales:    analytics.RoundCurrency(m.Sales),
		}
	}
	return resp
}

type PlatformResponse struct {
	Platform string  `json:"platform"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type InvestmentResponse struct {
	Total           float64 `json:"total"`
	PublisherFees   float64 `json:"publisherFees"`
	IllustratorFees float64 `json:"illustratorFees"`
	Editing         float64 `json:"editing"`
	Marketing       float64 `json:"marketing"`
	Production      float64 `json:"production"`
	Other           float64 `json:"other"`
}

type RevenueResponse struct {
	Total              float64 `json:"total"`
	PublisherSales     float64 `json:"publisherSales"`
	DirectSales        float64 `json:"directSales"`
	OnlineStoreSales   float64 `json:"onlineStoreSales"`
	OtherSales         float64 `json:"otherSales"`
	AverageRoyaltyRate float64 `json:"averageRoyaltyRate"`
	TotalRoyalties     float64 `json:"totalRoyalties"`
	TotalPublisherCut  float64 `json:"totalPublisherCut"`
	TotalPlatformFees  float64 `json:"totalPlatformFees"`
	TotalDonations     float64 `json:"totalDonations"`
}

type BreakEvenResponse struct {
	BreakEvenQuantity int     `json:"breakEvenQuantity"`
	BreakEvenRevenue  float64 `json:"breakEvenRevenue"`
	UnitsSoldSoFar    int     `json:"unitsSoldSoFar"`
	RemainingUnits    int     `json:"remainingUnits"`
	AverageSalePrice  float64 `json:"averageSalePrice"`
	ProgressPercent   float64 `json:"progressPercent"`
}

// ReportResponse is the presentation form of a book's financial report.
type ReportResponse struct {
	BookID      string `json:"bookId"`
	BookTitle   string `json:"bookTitle"`
	GeneratedAt string `json:"generatedAt"`

	TotalInvestment float64 `json:"totalInvestment"`
	TotalRevenue    float64 `json:"totalRevenue"`
	NetProfit       float64 `json:"netProfit"`
	ROIPercentage   float64 `json:"roiPercentage"`
	ProfitMargin    float64 `json:"profitMargin"`
	BreakevenStatus string  `json:"breakevenStatus"`

	Investment      InvestmentResponse `json:"investment"`
	Revenue         RevenueResponse    `json:"revenue"`
	BreakEven       BreakEvenResponse  `json:"breakEven"`
	FinancialHealth string             `json:"financialHealth"`
	Recommendations []string           `json:"recommendations"`

	ExpenseCount     int     `json:"expenseCount"`
	SaleCount        int     `json:"saleCount"`
	GiveawayCount    int     `json:"giveawayCount"`
	TotalUnitsSold   int     `json:"totalUnitsSold"`
	AverageSalePrice float64 `json:"averageSalePrice"`

	BestPlatformByRevenue   string             `json:"bestPlatformByRevenue"`
	WorstPlatformByRevenue  string             `json:"worstPlatformByRevenue"`
	BestPlatformByQuantity  string             `json:"bestPlatformByQuantity"`
	WorstPlatformByQuantity string             `json:"worstPlatformByQuantity"`
	Platforms               []PlatformResponse `json:"platforms"`
	Channels                []ChannelResponse  `json:"channels"`
	Categories              []CategoryResponse `json:"categories"`
	CategoryChart           []CategoryResponse `json:"categoryChart"`
	Monthly                 []MonthlyResponse  `json:"monthly"`

	DaysSinceLaunch int  `json:"daysSinceLaunch"`
	DaysToBreakEven *int `json:"daysToBreakEven"`
}

func newReportResponse(r analytics.AuthorFinancialAnalytics) ReportResponse {
	resp := ReportResponse{
		BookID:          r.BookID,
		BookTitle:       r.BookTitle,
		GeneratedAt:     r.GeneratedAt.Format(time.RFC3339),
		TotalInvestment: analytics.RoundCurrency(r.TotalInvestment),
		TotalRevenue:    analytics.RoundCurrency(r.TotalRevenue),
		NetProfit:       analytics.RoundCurrency(r.NetProfit),
		ROIPercentage:   analytics.RoundPercent(r.ROIPercentage),
		ProfitMargin:    analytics.RoundPercent(r.ProfitMargin),
		BreakevenStatus: r.BreakevenStatus,
		Investment: InvestmentResponse{
			Total:           analytics.RoundCurrency(r.Investment.Total),
			PublisherFees:   analytics.RoundCurrency(r.Investment.PublisherFees),
			IllustratorFees: analytics.RoundCurrency(r.Investment.IllustratorFees),
			Editing:         analytics.RoundCurrency(r.Investment.Editing),
			Marketing:       analytics.RoundCurrency(r.Investment.Marketing),
			Production:      analytics.RoundCurrency(r.Investment.Production),
			Other:           analytics.RoundCurrency(r.Investment.Other),
		},
		Revenue: RevenueResponse{
			Total:              analytics.RoundCurrency(r.Revenue.Total),
			PublisherSales:     analytics.RoundCurrency(r.Revenue.PublisherSales),
			DirectSales:        analytics.RoundCurrency(r.Revenue.DirectSales),
			OnlineStoreSales:   analytics.RoundCurrency(r.Revenue.OnlineStoreSales),
			OtherSales:         analytics.RoundCurrency(r.Revenue.OtherSales),
			AverageRoyaltyRate: analytics.RoundPercent(r.Revenue.AverageRoyaltyRate),
			TotalRoyalties:     analytics.RoundCurrency(r.Revenue.TotalRoyalties),
			TotalPublisherCut:  analytics.RoundCurrency(r.Revenue.TotalPublisherCut),
			TotalPlatformFees:  analytics.RoundCurrency(r.Revenue.TotalPlatformFees),
			TotalDonations:     analytics.RoundCurrency(r.Revenue.TotalDonations),
		},
		BreakEven: BreakEvenResponse{
			BreakEvenQuantity: r.BreakEven.BreakEvenQuantity,
			BreakEvenRevenue:  analytics.RoundCurrency(r.BreakEven.BreakEvenRevenue),
			UnitsSoldSoFar:    r.BreakEven.UnitsSoldSoFar,
			RemainingUnits:    r.BreakEven.RemainingUnits,
			AverageSalePrice:  analytics.RoundCurrency(r.BreakEven.AverageSalePrice),
			ProgressPercent:   analytics.RoundPercent(r.BreakEven.ProgressPercent),
		},
		FinancialHealth:         string(r.Health),
		Recommendations:         r.Recommendations,
		ExpenseCount:            r.ExpenseCount,
		SaleCount:               r.SaleCount,
		GiveawayCount:           r.GiveawayCount,
		TotalUnitsSold:          r.TotalUnitsSold,
		AverageSalePrice:        analytics.RoundCurrency(r.AverageSalePrice),
		BestPlatformByRevenue:   r.Platforms.BestByRevenue,
		WorstPlatformByRevenue:  r.Platforms.WorstByRevenue,
		BestPlatformByQuantity:  r.Platforms.BestByQuantity,
		WorstPlatformByQuantity: r.Platforms.WorstByQuantity,
		Platforms:               make([]PlatformResponse, len(r.Platforms.Platforms)),
		Channels:                newChannelResponses(r.Channels),
		Categories:              newCategoryResponses(r.Categories),
		CategoryChart:           newCategoryResponses(r.CategoryChart),
		Monthly:                 newMonthlyResponses(r.Monthly),
		DaysSinceLaunch:         r.DaysSinceLaunch,
		DaysToBreakEven:         r.DaysToBreakEven,
	}

	if resp.Recommendations == nil {
		resp.Recommendations = []string{}
	}
	for i, p := range r.Platforms.Platforms {
		resp.Platforms[i] = PlatformResponse{
			Platform: p.Platform,
			Quantity: p.Quantity,
			Revenue:  analytics.RoundCurrency(p.Revenue),
		}
	}

	return resp
}

func newCategoryResponses(categories []analytics.CategoryAmount) []CategoryResponse {
	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = CategoryResponse{
			Category:   string(c.Category),
			Label:      c.Label,
			Amount:     analytics.RoundCurrency(c.Amount),
			Percentage: analytics.RoundPercent(c.Percentage),
		}
	}
	return resp
}

// SnapshotResponse is the summary row of a materialized report.
type SnapshotResponse struct {
	BookID          string  `json:"bookId"`
	BookTitle       string  `json:"bookTitle"`
	TotalInvestment float64 `json:"totalInvestment"`
	TotalRevenue    float64 `json:"totalRevenue"`
	NetProfit       float64 `json:"netProfit"`
	ROIPercentage   float64 `json:"roiPercentage"`
	ProgressPercent float64 `json:"progressPercent"`
	FinancialHealth string  `json:"financialHealth"`
	BreakevenStatus string  `json:"breakevenStatus"`
	CalculatedAt    string  `json:"calculatedAt"`
}

func newSnapshotResponse(s model.ReportSnapshot) SnapshotResponse {
	return SnapshotResponse{
		BookID:          s.BookID,
		BookTitle:       s.BookTitle,
		TotalInvestment: analytics.RoundCurrency(s.TotalInvestment),
		TotalRevenue:    analytics.RoundCurrency(s.TotalRevenue),
		NetProfit:       analytics.RoundCurrency(s.NetProfit),
		ROIPercentage:   analytics.RoundPercent(s.ROIPercentage),
		ProgressPercent: analytics.RoundPercent(s.ProgressPercent),
		FinancialHealth: s.FinancialHealth,
		BreakevenStatus: s.BreakevenStatus,
		CalculatedAt:    s.CalculatedAt.Format(time.RFC3339),
	}
}

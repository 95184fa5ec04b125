package analytics

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

// monthLayout renders month keys. Go's reference layout is locale-independent (English).
const monthLayout = "Jan 2006"

// unspecifiedPlatform labels sales recorded without a platform name.
const unspecifiedPlatform = "Unspecified"

var hundred = decimal.NewFromInt(100)

// TotalExpenses sums expense amounts exactly. Returns zero for an empty slice.
func TotalExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalSales sums the stored TotalAmount of every sale, giveaways included.
func TotalSales(sales []model.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.TotalAmount)
	}
	return total
}

// TotalQuantity sums sale quantities, giveaways included.
func TotalQuantity(sales []model.Sale) int {
	var units int
	for _, s := range sales {
		units += s.Quantity
	}
	return units
}

// GiveawayCount counts sales flagged as giveaways.
func GiveawayCount(sales []model.Sale) int {
	var n int
	for _, s := range sales {
		if s.IsGiveaway {
			n++
		}
	}
	return n
}

// AverageSalePrice is total sales divided by units sold, or zero when nothing was sold.
func AverageSalePrice(sales []model.Sale) decimal.Decimal {
	return averagePrice(TotalSales(sales), TotalQuantity(sales))
}

func averagePrice(revenue decimal.Decimal, units int) decimal.Decimal {
	if units <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(units)))
}

// percentOf returns part/whole*100, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// ExpensesByCategory sums expenses per category. Unknown categories are folded into OTHER.
func ExpensesByCategory(expenses []model.Expense) map[model.ExpenseCategory]decimal.Decimal {
	sums := make(map[model.ExpenseCategory]decimal.Decimal)
	for _, e := range expenses {
		c := e.Category.Normalize()
		sums[c] = sums[c].Add(e.Amount)
	}
	return sums
}

// SalesByType sums sale totals per channel. Unknown types are folded into OTHER.
func SalesByType(sales []model.Sale) map[model.SaleType]decimal.Decimal {
	sums := make(map[model.SaleType]decimal.Decimal)
	for _, s := range sales {
		t := s.Type.Normalize()
		sums[t] = sums[t].Add(s.TotalAmount)
	}
	return sums
}

// SalesByPlatform sums units and revenue per platform name, in order of first appearance.
// Names are trimmed; blank names are grouped as "Unspecified".
func SalesByPlatform(sales []model.Sale) []PlatformAmount {
	platforms := []PlatformAmount{}
	index := make(map[string]int)

	for _, s := range sales {
		name := strings.TrimSpace(s.Platform)
		if name == "" {
			name = unspecifiedPlatform
		}
		i, ok := index[name]
		if !ok {
			i = len(platforms)
			index[name] = i
			platforms = append(platforms, PlatformAmount{Platform: name, Revenue: decimal.Zero})
		}
		platforms[i].Quantity += s.Quantity
		platforms[i].Revenue = platforms[i].Revenue.Add(s.TotalAmount)
	}

	return platforms
}

// ExpenseCategoryReport lists every known category in enumeration order, including
// categories with no spend, with each category's share of total expenses.
func ExpenseCategoryReport(expenses []model.Expense) []CategoryAmount {
	sums := ExpensesByCategory(expenses)
	total := TotalExpenses(expenses)

	report := make([]CategoryAmount, 0, len(model.ExpenseCategories))
	for _, c := range model.ExpenseCategories {
		amount := sums[c]
		report = append(report, CategoryAmount{
			Category:   c,
			Label:      c.Label(),
			Amount:     amount,
			Percentage: percentOf(amount, total),
		})
	}
	return report
}

// ExpenseCategoryChart lists only categories with a non-zero total, largest first.
// Equal amounts keep enumeration order.
func ExpenseCategoryChart(expenses []model.Expense) []CategoryAmount {
	chart := []CategoryAmount{}
	for _, c := range ExpenseCategoryReport(expenses) {
		if !c.Amount.IsZero() {
			chart = append(chart, c)
		}
	}
	slices.SortStableFunc(chart, func(a, b CategoryAmount) int {
		return b.Amount.Cmp(a.Amount)
	})
	return chart
}

// MonthlyTotals sums expenses and sales per calendar month and returns the months in
// chronological order. Labels are parsed back into dates for ordering; sorting the
// labels themselves would put "Feb 2024" after "Jan 2025".
func MonthlyTotals(expenses []model.Expense, sales []model.Sale) []MonthlyAmount {
	byMonth := make(map[string]*MonthlyAmount)

	bucket := func(t time.Time) *MonthlyAmount {
		label := t.Format(monthLayout)
		m, ok := byMonth[label]
		if !ok {
			m = &MonthlyAmount{Month: label, Expenses: decimal.Zero, Sales: decimal.Zero}
			byMonth[label] = m
		}
		return m
	}

	for _, e := range expenses {
		m := bucket(e.Date)
		m.Expenses = m.Expenses.Add(e.Amount)
	}
	for _, s := range sales {
		m := bucket(s.Date)
		m.Sales = m.Sales.Add(s.TotalAmount)
	}

	months := make([]MonthlyAmount, 0, len(byMonth))
	for _, m := range byMonth {
		months = append(months, *m)
	}
	slices.SortFunc(months, func(a, b MonthlyAmount) int {
		return monthStart(a.Month).Compare(monthStart(b.Month))
	})
	return months
}

func monthStart(label string) time.Time {
	t, err := time.Parse(monthLayout, label)
	if err != nil {
		return time.Time{}
	}
	return t
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Author-Ledger-Backend/internal/analytics"
	"github.com/ndewijer/Author-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
	"github.com/ndewijer/Author-Ledger-Backend/internal/testutil"
)

var fixedNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestAnalyticsService_BookReport(t *testing.T) {
	ctx := context.Background()

	t.Run("computes report from stored records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db, fixedNow)

		book := testutil.NewBook().WithLaunchDate(testutil.Date(2024, time.March, 1)).Build(t, db)
		testutil.NewExpense(book.ID).WithCategory(model.ExpenseMarketing).WithAmount(testutil.Dec("1000")).Build(t, db)
		testutil.NewSale(book.ID).WithQuantity(10).WithUnitPrice(testutil.Dec("110")).
			WithDate(testutil.Date(2024, time.March, 15)).Build(t, db)
		// Other books' records and unassigned expenses stay out of the book report.
		testutil.NewExpense("").WithAmount(testutil.Dec("50")).Build(t, db)
		other := testutil.NewBook().Build(t, db)
		testutil.NewSale(other.ID).Build(t, db)

		report, err := svc.BookReport(ctx, book.ID)
		require.NoError(t, err)

		assert.Equal(t, book.ID, report.BookID)
		assert.True(t, report.TotalInvestment.Equal(testutil.Dec("1000")), "investment = %s", report.TotalInvestment)
		assert.True(t, report.TotalRevenue.Equal(testutil.Dec("1100")), "revenue = %s", report.TotalRevenue)
		assert.True(t, report.NetProfit.Equal(testutil.Dec("100")), "netProfit = %s", report.NetProfit)
		assert.True(t, report.ROIPercentage.Equal(testutil.Dec("10")), "roi = %s", report.ROIPercentage)
		assert.Equal(t, analytics.HealthGood, report.Health)
		assert.Equal(t, analytics.StatusRecouped, report.BreakevenStatus)
		assert.Equal(t, 9, report.BreakEven.BreakEvenQuantity)
		assert.Equal(t, 365, report.DaysSinceLaunch)
		require.NotNil(t, report.DaysToBreakEven)
		assert.Equal(t, 14, *report.DaysToBreakEven)
		assert.True(t, report.GeneratedAt.Equal(fixedNow), "generatedAt = %v", report.GeneratedAt)
	})

	t.Run("stored totals and giveaways", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db, fixedNow)

		book := testutil.NewBook().WithID(testutil.MakeID()).Build(t, db)
		testutil.NewSale(book.ID).WithQuantity(10).WithUnitPrice(testutil.Dec("10")).WithTotal(testutil.Dec("95")).
			WithRoyalty(testutil.Dec("60"), testutil.Dec("57")).Build(t, db)
		testutil.NewSale(book.ID).WithQuantity(5).WithUnitPrice(testutil.Dec("10")).Giveaway().Build(t, db)

		report, err := svc.BookReport(ctx, book.ID)
		require.NoError(t, err)

		assert.True(t, report.TotalRevenue.Equal(testutil.Dec("95")), "revenue = %s", report.TotalRevenue)
		assert.True(t, report.Revenue.TotalRoyalties.Equal(testutil.Dec("57")), "royalties = %s", report.Revenue.TotalRoyalties)
		assert.Equal(t, 2, report.SaleCount)
		assert.Equal(t, 1, report.GiveawayCount)
		assert.Equal(t, 15, report.TotalUnitsSold)
	})

	t.Run("unknown book is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db, fixedNow)

		_, err := svc.BookReport(ctx, testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrBookNotFound)

		_, err = svc.BookTotals(ctx, testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrBookNotFound)

		_, err = svc.BookChannels(ctx, testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
	})

	t.Run("corrupt stored category surfaces as data inconsistency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db, fixedNow)
		book := testutil.NewBook().Build(t, db)
		testutil.NewExpense(book.ID).WithRawCategory("CATERING").Build(t, db)

		_, err := svc.BookReport(ctx, book.ID)
		assert.ErrorIs(t, err, apperrors.ErrDataInconsistency)
	})
}

func TestAnalyticsService_Totals(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAnalyticsService(t, db, fixedNow)

	book := testutil.NewBook().Build(t, db)
	testutil.NewExpense(book.ID).WithAmount(testutil.Dec("200")).Build(t, db)
	testutil.NewExpense("").WithAmount(testutil.Dec("50")).Build(t, db)
	testutil.NewSale(book.ID).WithQuantity(2).WithUnitPrice(testutil.Dec("15")).Build(t, db)

	t.Run("book totals", func(t *testing.T) {
		totals, err := svc.BookTotals(ctx, book.ID)
		require.NoError(t, err)

		assert.True(t, totals.TotalExpenses.Equal(testutil.Dec("200")))
		assert.True(t, totals.TotalIncome.Equal(testutil.Dec("30")))
		assert.True(t, totals.NetProfit.Equal(testutil.Dec("-170")))
		assert.Equal(t, analytics.StatusStillNegative, totals.BreakevenStatus)
		assert.Equal(t, 1, totals.ExpenseCount)
		assert.Equal(t, 1, totals.SaleCount)
	})

	t.Run("global totals include unassigned expenses", func(t *testing.T) {
		totals, err := svc.GlobalTotals(ctx)
		require.NoError(t, err)

		assert.True(t, totals.TotalExpenses.Equal(testutil.Dec("250")))
		assert.Equal(t, 2, totals.ExpenseCount)
	})

	t.Run("global monthly trend", func(t *testing.T) {
		months, err := svc.GlobalMonthly(ctx)
		require.NoError(t, err)

		require.Len(t, months, 2)
		assert.Equal(t, "Feb 2024", months[0].Month)
		assert.True(t, months[0].Expenses.Equal(testutil.Dec("250")))
		assert.Equal(t, "Mar 2024", months[1].Month)
		assert.True(t, months[1].Sales.Equal(testutil.Dec("30")))
	})

	t.Run("channels", func(t *testing.T) {
		channels, err := svc.BookChannels(ctx, book.ID)
		require.NoError(t, err)

		global, err := svc.GlobalChannels(ctx)
		require.NoError(t, err)

		require.Len(t, global, len(channels))
		for i := range channels {
			assert.Equal(t, channels[i].Channel, global[i].Channel)
			assert.True(t, channels[i].TotalAmount.Equal(global[i].TotalAmount))
			assert.True(t, channels[i].Percentage.Equal(global[i].Percentage))
		}
	})
}

func TestAnalyticsService_Overview(t *testing.T) {
	ctx := context.Background()

	t.Run("returns one report per book in book order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db, fixedNow)

		var books []model.Book
		for i := range 5 {
			book := testutil.NewBook().WithLaunchDate(testutil.Date(2020+i, time.January, 1)).Build(t, db)
			testutil.NewSale(book.ID).WithQuantity(i + 1).Build(t, db)
			books = append(books, book)
		}

		reports, err := svc.Overview(ctx)
		require.NoError(t, err)
		require.Len(t, reports, len(books))

		for i, report := range reports {
			assert.Equal(t, books[i].ID, report.BookID)
			assert.Equal(t, i+1, report.TotalUnitsSold)
			assert.True(t, report.GeneratedAt.Equal(fixedNow), "generatedAt = %v", report.GeneratedAt)
		}
	})

	t.Run("empty catalogue", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db, fixedNow)

		reports, err := svc.Overview(ctx)
		require.NoError(t, err)
		assert.Empty(t, reports)
	})

	t.Run("one failing book fails the overview", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db, fixedNow)

		testutil.NewBook().Build(t, db)
		broken := testutil.NewBook().Build(t, db)
		testutil.NewSale(broken.ID).WithRawType("BARTER").Build(t, db)

		_, err := svc.Overview(ctx)
		assert.ErrorIs(t, err, apperrors.ErrDataInconsistency)
	})

	t.Run("cancelled context", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db, fixedNow)
		testutil.NewBook().Build(t, db)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.Overview(cancelled)
		assert.True(t, errors.Is(err, context.Canceled), "expected context.Canceled, got %v", err)
	})
}

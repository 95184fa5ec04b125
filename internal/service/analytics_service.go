package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Author-Ledger-Backend/internal/analytics"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
	"github.com/ndewijer/Author-Ledger-Backend/internal/repository"
)

// AnalyticsService loads a book's records from the store and runs the analytics engine
// over them. It holds no state between calls.
type AnalyticsService struct {
	bookRepo       *repository.BookRepository
	expenseRepo    *repository.ExpenseRepository
	saleRepo       *repository.SaleRepository
	maxConcurrency int
	now            func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService. maxConcurrency bounds how many
// books are computed in parallel by Overview; values below 1 are treated as 1.
func NewAnalyticsService(
	bookRepo *repository.BookRepository,
	expenseRepo *repository.ExpenseRepository,
	saleRepo *repository.SaleRepository,
	maxConcurrency int,
) *AnalyticsService {
	return &AnalyticsService{
		bookRepo:       bookRepo,
		expenseRepo:    expenseRepo,
		saleRepo:       saleRepo,
		maxConcurrency: max(maxConcurrency, 1),
		now:            time.Now,
	}
}

// WithClock returns a copy of the service that reads the reference time from now.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	clone := *s
	clone.now = now
	return &clone
}

// BookReport computes the full financial report for one book.
//
// Returns apperrors.ErrBookNotFound if the book doesn't exist.
func (s *AnalyticsService) BookReport(ctx context.Context, bookID string) (analytics.AuthorFinancialAnalytics, error) {
	book, err := s.bookRepo.GetBook(ctx, bookID)
	if err != nil {
		return analytics.AuthorFinancialAnalytics{}, err
	}

	return s.reportFor(ctx, book, s.now().UTC())
}

// BookTotals computes the lightweight totals for one book.
func (s *AnalyticsService) BookTotals(ctx context.Context, bookID string) (analytics.Totals, error) {
	if _, err := s.bookRepo.GetBook(ctx, bookID); err != nil {
		return analytics.Totals{}, err
	}

	expenses, sales, err := s.loadRecords(ctx, bookID)
	if err != nil {
		return analytics.Totals{}, err
	}

	return analytics.ComputeTotals(expenses, sales), nil
}

// BookChannels computes the sales channel breakdown for one book.
func (s *AnalyticsService) BookChannels(ctx context.Context, bookID string) ([]analytics.ChannelShare, error) {
	if _, err := s.bookRepo.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.GetSales(ctx, model.SaleFilter{BookID: bookID})
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	return analytics.ComputeChannelBreakdown(sales), nil
}

// GlobalTotals computes totals over every record, unassigned expenses included.
func (s *AnalyticsService) GlobalTotals(ctx context.Context) (analytics.Totals, error) {
	expenses, sales, err := s.loadRecords(ctx, "")
	if err != nil {
		return analytics.Totals{}, err
	}

	return analytics.ComputeTotals(expenses, sales), nil
}

// GlobalChannels computes the channel breakdown over every sale.
func (s *AnalyticsService) GlobalChannels(ctx context.Context) ([]analytics.ChannelShare, error) {
	sales, err := s.saleRepo.GetSales(ctx, model.SaleFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	return analytics.ComputeChannelBreakdown(sales), nil
}

// GlobalMonthly computes the monthly expense and sales trend over every record.
func (s *AnalyticsService) GlobalMonthly(ctx context.Context) ([]analytics.MonthlyAmount, error) {
	expenses, sales, err := s.loadRecords(ctx, "")
	if err != nil {
		return nil, err
	}

	return analytics.MonthlyTotals(expenses, sales), nil
}

// Overview computes one report per book, in book order.
//
// Books are computed in parallel, at most maxConcurrency at a time. All reports share one
// reference time. The first failure cancels the remaining work and is returned.
func (s *AnalyticsService) Overview(ctx context.Context) ([]analytics.AuthorFinancialAnalytics, error) {
	books, err := s.bookRepo.GetBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}

	now := s.now().UTC()
	reports := make([]analytics.AuthorFinancialAnalytics, len(books))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for i, book := range books {
		g.Go(func() error {
			report, err := s.reportFor(gctx, book, now)
			if err != nil {
				return fmt.Errorf("book %s: %w", book.ID, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (s *AnalyticsService) reportFor(ctx context.Context, book model.Book, now time.Time) (analytics.AuthorFinancialAnalytics, error) {
	expenses, sales, err := s.loadRecords(ctx, book.ID)
	if err != nil {
		return analytics.AuthorFinancialAnalytics{}, err
	}

	return analytics.ComputeReport(book, expenses, sales, now), nil
}

// loadRecords materializes the expenses and sales of one book, or of all books when
// bookID is empty.
func (s *AnalyticsService) loadRecords(ctx context.Context, bookID string) ([]model.Expense, []model.Sale, error) {
	expenses, err := s.expenseRepo.GetExpenses(ctx, model.ExpenseFilter{BookID: bookID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	sales, err := s.saleRepo.GetSales(ctx, model.SaleFilter{BookID: bookID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sales: %w", err)
	}

	return expenses, sales, nil
}

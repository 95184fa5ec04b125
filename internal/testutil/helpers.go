package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Author-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Author-Ledger-Backend/internal/service"
)

func NewTestBookService(t *testing.T, db *sql.DB) *service.BookService {
	t.Helper()

	return service.NewBookService(repository.NewBookRepository(db))
}

func NewTestExpenseService(t *testing.T, db *sql.DB) *service.ExpenseService {
	t.Helper()

	return service.NewExpenseService(
		repository.NewExpenseRepository(db),
		repository.NewBookRepository(db),
	)
}

func NewTestSaleService(t *testing.T, db *sql.DB) *service.SaleService {
	t.Helper()

	return service.NewSaleService(
		repository.NewSaleRepository(db),
		repository.NewBookRepository(db),
		nil,
	)
}

// NewTestAnalyticsService returns an AnalyticsService whose clock is fixed at now.
func NewTestAnalyticsService(t *testing.T, db *sql.DB, now time.Time) *service.AnalyticsService {
	t.Helper()

	return service.NewAnalyticsService(
		repository.NewBookRepository(db),
		repository.NewExpenseRepository(db),
		repository.NewSaleRepository(db),
		2,
	).WithClock(func() time.Time { return now })
}

func NewTestSnapshotService(t *testing.T, db *sql.DB, now time.Time) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		NewTestAnalyticsService(t, db, now),
		repository.NewSnapshotRepository(db),
		nil,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// MakeID returns a fresh random UUID string.
func MakeID() string {
	return uuid.New().String()
}

// MakeTitle returns base with a random suffix so titles stay distinct across builders.
func MakeTitle(base string) string {
	if base == "" {
		base = "Book"
	}
	return base + " " + randomAlphanumeric(6)
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Dec parses a decimal literal, panicking on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		//nolint:gosec // G404: Test data, not security sensitive
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

// BookBuilder provides a fluent interface for creating test books.
//
// Example usage:
//
//	// Simple creation with defaults
//	book := testutil.NewBook().Build(t, db)
//
//	// Customized book
//	book := testutil.NewBook().
//	    WithTitle("Custom Book").
//	    WithLaunchDate(testutil.Date(2024, 3, 1)).
//	    Build(t, db)
type BookBuilder struct {
	ID         string
	Title      string
	LaunchDate time.Time
	Author     string
	Publisher  string
	ISBN       string
	Genre      string
}

// NewBook creates a BookBuilder with sensible defaults.
func NewBook() *BookBuilder {
	return &BookBuilder{
		ID:         MakeID(),
		Title:      MakeTitle("Test Book"),
		LaunchDate: Date(2024, time.March, 1),
		Author:     "Test Author",
		Publisher:  "Test Press",
		Genre:      "Fiction",
	}
}

// WithID sets a custom ID.
func (b *BookBuilder) WithID(id string) *BookBuilder {
	b.ID = id
	return b
}

// WithTitle sets a custom title.
func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.Title = title
	return b
}

// WithLaunchDate sets a custom launch date.
func (b *BookBuilder) WithLaunchDate(date time.Time) *BookBuilder {
	b.LaunchDate = date
	return b
}

// WithISBN sets a custom ISBN.
func (b *BookBuilder) WithISBN(isbn string) *BookBuilder {
	b.ISBN = isbn
	return b
}

// Build creates the book in the database and returns it.
func (b *BookBuilder) Build(t *testing.T, db *sql.DB) model.Book {
	t.Helper()

	createdAt := time.Now().UTC().Truncate(time.Second)

	query := `
		INSERT INTO book (id, title, launch_date, description, author, publisher, illustrator, isbn, genre, created_at)
		VALUES (?, ?, ?, '', ?, ?, '', ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Title, b.LaunchDate.Format(dateLayout), b.Author, b.Publisher, b.ISBN, b.Genre,
		createdAt.Format(timestampLayout))
	if err != nil {
		t.Fatalf("Failed to create test book: %v", err)
	}

	return model.Book{
		ID:         b.ID,
		Title:      b.Title,
		LaunchDate: b.LaunchDate,
		Author:     b.Author,
		Publisher:  b.Publisher,
		ISBN:       b.ISBN,
		Genre:      b.Genre,
		CreatedAt:  createdAt,
	}
}

// Convenience functions

// CreateBook creates a book with the given title and default values.
func CreateBook(t *testing.T, db *sql.DB, title string) model.Book {
	t.Helper()
	return NewBook().WithTitle(title).Build(t, db)
}

// ExpenseBuilder provides a fluent interface for creating test expenses.
//
// Example usage:
//
//	expense := testutil.NewExpense(book.ID).
//	    WithCategory(model.ExpenseMarketing).
//	    WithAmount(testutil.Dec("150.00")).
//	    Build(t, db)
type ExpenseBuilder struct {
	ID          string
	BookID      string
	Category    string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// NewExpense creates an ExpenseBuilder for the given book. An empty bookID creates an
// unassigned expense.
func NewExpense(bookID string) *ExpenseBuilder {
	return &ExpenseBuilder{
		ID:          MakeID(),
		BookID:      bookID,
		Category:    string(model.ExpensePrintingCosts),
		Amount:      Dec("100.00"),
		Description: "Test expense",
		Date:        Date(2024, time.February, 1),
	}
}

// WithCategory sets the expense category.
func (b *ExpenseBuilder) WithCategory(category model.ExpenseCategory) *ExpenseBuilder {
	b.Category = string(category)
	return b
}

// WithRawCategory stores a category string verbatim, bypassing the enumeration.
func (b *ExpenseBuilder) WithRawCategory(category string) *ExpenseBuilder {
	b.Category = category
	return b
}

// WithAmount sets the amount.
func (b *ExpenseBuilder) WithAmount(amount decimal.Decimal) *ExpenseBuilder {
	b.Amount = amount
	return b
}

// WithDate sets the expense date.
func (b *ExpenseBuilder) WithDate(date time.Time) *ExpenseBuilder {
	b.Date = date
	return b
}

// Build creates the expense in the database and returns it.
func (b *ExpenseBuilder) Build(t *testing.T, db *sql.DB) model.Expense {
	t.Helper()

	createdAt := time.Now().UTC().Truncate(time.Second)

	var bookID any
	if b.BookID != "" {
		bookID = b.BookID
	}

	query := `
		INSERT INTO expense (id, book_id, category, amount, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, bookID, b.Category, b.Amount.String(), b.Description,
		b.Date.Format(dateLayout), createdAt.Format(timestampLayout))
	if err != nil {
		t.Fatalf("Failed to create test expense: %v", err)
	}

	return model.Expense{
		ID:          b.ID,
		BookID:      b.BookID,
		Category:    model.ExpenseCategory(b.Category),
		Amount:      b.Amount,
		Description: b.Description,
		Date:        b.Date,
		CreatedAt:   createdAt,
	}
}

// SaleBuilder provides a fluent interface for creating test sales.
// The total defaults to quantity x unit price unless set explicitly.
//
// Example usage:
//
//	sale := testutil.NewSale(book.ID).
//	    WithType(model.SaleDirect).
//	    WithQuantity(10).
//	    WithUnitPrice(testutil.Dec("12.99")).
//	    Build(t, db)
type SaleBuilder struct {
	ID             string
	BookID         string
	Type           string
	Platform       string
	Quantity       int
	UnitPrice      decimal.Decimal
	TotalAmount    *decimal.Decimal
	DonationAmount decimal.Decimal
	IsGiveaway     bool
	RoyaltyRate    decimal.NullDecimal
	RoyaltyAmount  decimal.NullDecimal
	PublisherCut   decimal.Decimal
	PlatformFees   decimal.Decimal
	Date           time.Time
}

// NewSale creates a SaleBuilder for the given book.
func NewSale(bookID string) *SaleBuilder {
	return &SaleBuilder{
		ID:        MakeID(),
		BookID:    bookID,
		Type:      string(model.SaleOnlineStore),
		Platform:  "Amazon",
		Quantity:  1,
		UnitPrice: Dec("10.00"),
		Date:      Date(2024, time.March, 15),
	}
}

// WithType sets the sale channel.
func (b *SaleBuilder) WithType(saleType model.SaleType) *SaleBuilder {
	b.Type = string(saleType)
	return b
}

// WithRawType stores a sale type string verbatim, bypassing the enumeration.
func (b *SaleBuilder) WithRawType(saleType string) *SaleBuilder {
	b.Type = saleType
	return b
}

// WithPlatform sets the platform name.
func (b *SaleBuilder) WithPlatform(platform string) *SaleBuilder {
	b.Platform = platform
	return b
}

// WithQuantity sets the number of units.
func (b *SaleBuilder) WithQuantity(quantity int) *SaleBuilder {
	b.Quantity = quantity
	return b
}

// WithUnitPrice sets the unit price.
func (b *SaleBuilder) WithUnitPrice(price decimal.Decimal) *SaleBuilder {
	b.UnitPrice = price
	return b
}

// WithTotal sets an explicit total amount.
func (b *SaleBuilder) WithTotal(total decimal.Decimal) *SaleBuilder {
	b.TotalAmount = &total
	return b
}

// WithRoyalty sets the royalty rate and amount.
func (b *SaleBuilder) WithRoyalty(rate, amount decimal.Decimal) *SaleBuilder {
	b.RoyaltyRate = decimal.NewNullDecimal(rate)
	b.RoyaltyAmount = decimal.NewNullDecimal(amount)
	return b
}

// Giveaway marks the sale as a giveaway with a zero total.
func (b *SaleBuilder) Giveaway() *SaleBuilder {
	b.IsGiveaway = true
	zero := decimal.Zero
	b.TotalAmount = &zero
	return b
}

// WithDate sets the sale date.
func (b *SaleBuilder) WithDate(date time.Time) *SaleBuilder {
	b.Date = date
	return b
}

// Build creates the sale in the database and returns it.
func (b *SaleBuilder) Build(t *testing.T, db *sql.DB) model.Sale {
	t.Helper()

	createdAt := time.Now().UTC().Truncate(time.Second)

	total := b.UnitPrice.Mul(decimal.NewFromInt(int64(b.Quantity)))
	if b.TotalAmount != nil {
		total = *b.TotalAmount
	}

	query := `
		INSERT INTO sale (id, book_id, type, platform, quantity, unit_price, total_amount,
			donation_amount, is_giveaway, royalty_rate, royalty_amount, publisher_cut,
			platform_fees, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.BookID, b.Type, b.Platform, b.Quantity, b.UnitPrice.String(),
		total.String(), b.DonationAmount.String(), b.IsGiveaway, nullDecimalArg(b.RoyaltyRate),
		nullDecimalArg(b.RoyaltyAmount), b.PublisherCut.String(), b.PlatformFees.String(),
		b.Date.Format(dateLayout), createdAt.Format(timestampLayout))
	if err != nil {
		t.Fatalf("Failed to create test sale: %v", err)
	}

	return model.Sale{
		ID:             b.ID,
		BookID:         b.BookID,
		Type:           model.SaleType(b.Type),
		Platform:       b.Platform,
		Quantity:       b.Quantity,
		UnitPrice:      b.UnitPrice,
		TotalAmount:    total,
		DonationAmount: b.DonationAmount,
		IsGiveaway:     b.IsGiveaway,
		RoyaltyRate:    b.RoyaltyRate,
		RoyaltyAmount:  b.RoyaltyAmount,
		PublisherCut:   b.PublisherCut,
		PlatformFees:   b.PlatformFees,
		Date:           b.Date,
		CreatedAt:      createdAt,
	}
}

func nullDecimalArg(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

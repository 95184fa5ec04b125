package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Author-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

// SaleRepository provides data access methods for the sale table.
type SaleRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSaleRepository creates a new SaleRepository with the provided database connection.
func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// WithTx returns a new SaleRepository scoped to the provided transaction.
func (r *SaleRepository) WithTx(tx *sql.Tx) *SaleRepository {
	return &SaleRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *SaleRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const saleColumns = `id, book_id, type, platform, quantity, unit_price, total_amount, donation_amount,
        is_giveaway, royalty_rate, royalty_amount, publisher_cut, platform_fees, date, created_at`

// GetSales retrieves sales matching the filter, sorted by date ascending.
// Filter semantics match ExpenseRepository.GetExpenses, with Type in place of Category.
func (r *SaleRepository) GetSales(ctx context.Context, filter model.SaleFilter) ([]model.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sale WHERE 1=1`
	var args []any

	if filter.BookID != "" {
		query += " AND book_id = ?"
		args = append(args, filter.BookID)
	}
	if !filter.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, formatDate(filter.StartDate))
	}
	if !filter.EndDate.IsZero() {
		query += " AND date <= ?"
		args = append(args, formatDate(filter.EndDate))
	}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, string(filter.Type))
	}
	query += " ORDER BY date ASC, created_at ASC"

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale table: %w", err)
	}
	defer rows.Close()

	sales := []model.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale table: %w", err)
	}

	return sales, nil
}

// GetSale retrieves a single sale by ID.
// Returns apperrors.ErrSaleNotFound if no sale has that ID.
func (r *SaleRepository) GetSale(ctx context.Context, saleID string) (model.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sale WHERE id = ?`

	s, err := scanSale(r.getQuerier().QueryRowContext(ctx, query, saleID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Sale{}, apperrors.ErrSaleNotFound
	}
	if err != nil {
		return model.Sale{}, err
	}

	return s, nil
}

// InsertSale stores a new sale. The caller assigns ID and CreatedAt.
func (r *SaleRepository) InsertSale(ctx context.Context, s *model.Sale) error {
	query := `
        INSERT INTO sale (` + saleColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		s.ID,
		s.BookID,
		string(s.Type),
		s.Platform,
		s.Quantity,
		s.UnitPrice.String(),
		s.TotalAmount.String(),
		s.DonationAmount.String(),
		s.IsGiveaway,
		nullableDecimal(s.RoyaltyRate),
		nullableDecimal(s.RoyaltyAmount),
		s.PublisherCut.String(),
		s.PlatformFees.String(),
		formatDate(s.Date),
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	return nil
}

// UpdateSale overwrites an existing sale.
// Returns apperrors.ErrSaleNotFound if no row was updated.
func (r *SaleRepository) UpdateSale(ctx context.Context, s *model.Sale) error {
	query := `
        UPDATE sale
        SET book_id = ?, type = ?, platform = ?, quantity = ?, unit_price = ?, total_amount = ?,
            donation_amount = ?, is_giveaway = ?, royalty_rate = ?, royalty_amount = ?,
            publisher_cut = ?, platform_fees = ?, date = ?
        WHERE id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		s.BookID,
		string(s.Type),
		s.Platform,
		s.Quantity,
		s.UnitPrice.String(),
		s.TotalAmount.String(),
		s.DonationAmount.String(),
		s.IsGiveaway,
		nullableDecimal(s.RoyaltyRate),
		nullableDecimal(s.RoyaltyAmount),
		s.PublisherCut.String(),
		s.PlatformFees.String(),
		formatDate(s.Date),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrSaleNotFound)
}

// DeleteSale removes a sale.
// Returns apperrors.ErrSaleNotFound if no row was deleted.
func (r *SaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM sale WHERE id = ?`, saleID)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrSaleNotFound)
}

func scanSale(row rowScanner) (model.Sale, error) {
	var s model.Sale
	var saleType, dateStr, createdAtStr string

	err := row.Scan(
		&s.ID,
		&s.BookID,
		&saleType,
		&s.Platform,
		&s.Quantity,
		&s.UnitPrice,
		&s.TotalAmount,
		&s.DonationAmount,
		&s.IsGiveaway,
		&s.RoyaltyRate,
		&s.RoyaltyAmount,
		&s.PublisherCut,
		&s.PlatformFees,
		&dateStr,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Sale{}, err
	}
	if err != nil {
		return model.Sale{}, fmt.Errorf("failed to scan sale: %w", err)
	}

	s.Type, err = model.ParseSaleType(saleType)
	if err != nil {
		return model.Sale{}, fmt.Errorf("%w: sale %s: %w", apperrors.ErrDataInconsistency, s.ID, err)
	}

	s.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Sale{}, fmt.Errorf("failed to parse date: %w", err)
	}

	s.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Sale{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return s, nil
}

func nullableDecimal(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

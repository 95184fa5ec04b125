package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ndewijer/Author-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the report_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new repository instance.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

const snapshotColumns = `book_id, book_title, total_investment, total_revenue, net_profit, roi_percentage,
        progress_percent, financial_health, breakeven_status, payload, calculated_at`

// GetSnapshots streams stored report snapshots, ordered by book title.
//
// The table holds one pre-computed report per book, refreshed by the scheduler, so the
// dashboard can list every book without recomputing from raw records.
//
// Parameters:
//   - bookIDs: restricts the result to these books; empty means all books
//   - callback: called once per record; returning an error stops iteration
//
// Returns an error if the query fails or if the callback returns an error during processing.
func (r *SnapshotRepository) GetSnapshots(
	ctx context.Context,
	bookIDs []string,
	callback func(snapshot model.ReportSnapshot) error,
) error {
	query := `SELECT ` + snapshotColumns + ` FROM report_snapshot`

	args := make([]any, 0, len(bookIDs))
	if len(bookIDs) > 0 {
		placeholders := make([]string, len(bookIDs))
		for i, id := range bookIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
		query += ` WHERE book_id IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY book_title ASC, book_id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query report_snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return err
		}

		if err := callback(snapshot); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the stored snapshot of one book.
// Returns apperrors.ErrSnapshotNotFound if the book has not been materialized yet.
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, bookID string) (model.ReportSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM report_snapshot WHERE book_id = ?`

	snapshot, err := scanSnapshot(r.db.QueryRowContext(ctx, query, bookID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ReportSnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.ReportSnapshot{}, err
	}

	return snapshot, nil
}

// UpsertSnapshots replaces the stored snapshots of the given books in one transaction.
func (r *SnapshotRepository) UpsertSnapshots(ctx context.Context, snapshots []model.ReportSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
        INSERT INTO report_snapshot (` + snapshotColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(book_id) DO UPDATE SET
            book_title = excluded.book_title,
            total_investment = excluded.total_investment,
            total_revenue = excluded.total_revenue,
            net_profit = excluded.net_profit,
            roi_percentage = excluded.roi_percentage,
            progress_percent = excluded.progress_percent,
            financial_health = excluded.financial_health,
            breakeven_status = excluded.breakeven_status,
            payload = excluded.payload,
            calculated_at = excluded.calculated_at
    `

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot upsert: %w", err)
	}
	defer stmt.Close()

	for _, s := range snapshots {
		_, err := stmt.ExecContext(ctx,
			s.BookID,
			s.BookTitle,
			s.TotalInvestment.String(),
			s.TotalRevenue.String(),
			s.NetProfit.String(),
			s.ROIPercentage.String(),
			s.ProgressPercent.String(),
			s.FinancialHealth,
			s.BreakevenStatus,
			string(s.Payload),
			formatTimestamp(s.CalculatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert snapshot for book %s: %w", s.BookID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshots: %w", err)
	}

	return nil
}

func scanSnapshot(row rowScanner) (model.ReportSnapshot, error) {
	var s model.ReportSnapshot
	var payload, calculatedAtStr string

	err := row.Scan(
		&s.BookID,
		&s.BookTitle,
		&s.TotalInvestment,
		&s.TotalRevenue,
		&s.NetProfit,
		&s.ROIPercentage,
		&s.ProgressPercent,
		&s.FinancialHealth,
		&s.BreakevenStatus,
		&payload,
		&calculatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ReportSnapshot{}, err
	}
	if err != nil {
		return model.ReportSnapshot{}, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	s.Payload = []byte(payload)

	s.CalculatedAt, err = ParseTime(calculatedAtStr)
	if err != nil {
		return model.ReportSnapshot{}, fmt.Errorf("failed to parse calculated_at: %w", err)
	}

	return s, nil
}

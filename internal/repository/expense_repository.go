package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Author-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

// ExpenseRepository provides data access methods for the expense table.
type ExpenseRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewExpenseRepository creates a new ExpenseRepository with the provided database connection.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// WithTx returns a new ExpenseRepository scoped to the provided transaction.
func (r *ExpenseRepository) WithTx(tx *sql.Tx) *ExpenseRepository {
	return &ExpenseRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *ExpenseRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const expenseColumns = `id, book_id, category, amount, description, date, created_at`

// GetExpenses retrieves expenses matching the filter, sorted by date ascending.
//
// Each non-zero filter field narrows the result:
//   - BookID: only expenses assigned to that book
//   - StartDate / EndDate: inclusive date bounds
//   - Category: exact category match
//
// Returns an empty slice if nothing matches. A stored category that is not a known
// value fails the whole call with apperrors.ErrDataInconsistency.
func (r *ExpenseRepository) GetExpenses(ctx context.Context, filter model.ExpenseFilter) ([]model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense WHERE 1=1`
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
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, string(filter.Category))
	}
	query += " ORDER BY date ASC, created_at ASC"

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense table: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense table: %w", err)
	}

	return expenses, nil
}

// GetExpense retrieves a single expense by ID.
// Returns apperrors.ErrExpenseNotFound if no expense has that ID.
func (r *ExpenseRepository) GetExpense(ctx context.Context, expenseID string) (model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense WHERE id = ?`

	e, err := scanExpense(r.getQuerier().QueryRowContext(ctx, query, expenseID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Expense{}, apperrors.ErrExpenseNotFound
	}
	if err != nil {
		return model.Expense{}, err
	}

	return e, nil
}

// InsertExpense stores a new expense. The caller assigns ID and CreatedAt.
func (r *ExpenseRepository) InsertExpense(ctx context.Context, e *model.Expense) error {
	query := `
        INSERT INTO expense (` + expenseColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		e.ID,
		nullableID(e.BookID),
		string(e.Category),
		e.Amount.String(),
		e.Description,
		formatDate(e.Date),
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// UpdateExpense overwrites an existing expense.
// Returns apperrors.ErrExpenseNotFound if no row was updated.
func (r *ExpenseRepository) UpdateExpense(ctx context.Context, e *model.Expense) error {
	query := `
        UPDATE expense
        SET book_id = ?, category = ?, amount = ?, description = ?, date = ?
        WHERE id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		nullableID(e.BookID),
		string(e.Category),
		e.Amount.String(),
		e.Description,
		formatDate(e.Date),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrExpenseNotFound)
}

// DeleteExpense removes an expense.
// Returns apperrors.ErrExpenseNotFound if no row was deleted.
func (r *ExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM expense WHERE id = ?`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrExpenseNotFound)
}

func scanExpense(row rowScanner) (model.Expense, error) {
	var e model.Expense
	var bookID sql.NullString
	var category, dateStr, createdAtStr string

	err := row.Scan(
		&e.ID,
		&bookID,
		&category,
		&e.Amount,
		&e.Description,
		&dateStr,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Expense{}, err
	}
	if err != nil {
		return model.Expense{}, fmt.Errorf("failed to scan expense: %w", err)
	}

	e.BookID = bookID.String

	e.Category, err = model.ParseExpenseCategory(category)
	if err != nil {
		return model.Expense{}, fmt.Errorf("%w: expense %s: %w", apperrors.ErrDataInconsistency, e.ID, err)
	}

	e.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Expense{}, fmt.Errorf("failed to parse date: %w", err)
	}

	e.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Expense{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return e, nil
}

// nullableID stores an empty reference as NULL.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

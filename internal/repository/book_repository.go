package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Author-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
)

// BookRepository provides data access methods for the book table.
type BookRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewBookRepository creates a new BookRepository with the provided database connection.
func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// WithTx returns a new BookRepository scoped to the provided transaction.
func (r *BookRepository) WithTx(tx *sql.Tx) *BookRepository {
	return &BookRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *BookRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const bookColumns = `id, title, launch_date, description, author, publisher, illustrator, isbn, genre, created_at`

// GetBooks retrieves all books ordered by launch date, oldest first.
// Returns an empty slice if no books exist.
func (r *BookRepository) GetBooks(ctx context.Context) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM book ORDER BY launch_date ASC, title ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query book table: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book table: %w", err)
	}

	return books, nil
}

// GetBook retrieves a single book by ID.
// Returns apperrors.ErrBookNotFound if no book has that ID.
func (r *BookRepository) GetBook(ctx context.Context, bookID string) (model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM book WHERE id = ?`

	b, err := scanBook(r.getQuerier().QueryRowContext(ctx, query, bookID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Book{}, apperrors.ErrBookNotFound
	}
	if err != nil {
		return model.Book{}, err
	}

	return b, nil
}

// InsertBook stores a new book. The caller assigns ID and CreatedAt.
func (r *BookRepository) InsertBook(ctx context.Context, b *model.Book) error {
	query := `
        INSERT INTO book (` + bookColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		b.ID,
		b.Title,
		formatDate(b.LaunchDate),
		b.Description,
		b.Author,
		b.Publisher,
		b.Illustrator,
		b.ISBN,
		b.Genre,
		formatTimestamp(b.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}

	return nil
}

// UpdateBook overwrites a book's editable fields.
// Returns apperrors.ErrBookNotFound if no row was updated.
func (r *BookRepository) UpdateBook(ctx context.Context, b *model.Book) error {
	query := `
        UPDATE book
        SET title = ?, launch_date = ?, description = ?, author = ?, publisher = ?,
            illustrator = ?, isbn = ?, genre = ?
        WHERE id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		b.Title,
		formatDate(b.LaunchDate),
		b.Description,
		b.Author,
		b.Publisher,
		b.Illustrator,
		b.ISBN,
		b.Genre,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrBookNotFound)
}

// DeleteBook removes a book. Its sales and snapshot are deleted with it; its expenses
// become unassigned.
func (r *BookRepository) DeleteBook(ctx context.Context, bookID string) error {
	query := `DELETE FROM book WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	return affectedOrNotFound(result, apperrors.ErrBookNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (model.Book, error) {
	var b model.Book
	var launchStr, createdAtStr string

	err := row.Scan(
		&b.ID,
		&b.Title,
		&launchStr,
		&b.Description,
		&b.Author,
		&b.Publisher,
		&b.Illustrator,
		&b.ISBN,
		&b.Genre,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Book{}, err
	}
	if err != nil {
		return model.Book{}, fmt.Errorf("failed to scan book: %w", err)
	}

	b.LaunchDate, err = ParseTime(launchStr)
	if err != nil {
		return model.Book{}, fmt.Errorf("failed to parse launch_date: %w", err)
	}

	b.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Book{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return b, nil
}

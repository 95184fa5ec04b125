package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrBookNotFound indicates that a book with the given ID does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrExpenseNotFound indicates that an expense with the given ID does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrSaleNotFound indicates that a sale with the given ID does not exist.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrSnapshotNotFound indicates that no report snapshot has been stored for the book.
	ErrSnapshotNotFound = errors.New("report snapshot not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// Generic operation failure constants
	ErrFailedToRetrieve = errors.New("failed to retrieve data")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Book operation errors
	ErrFailedToRetrieveBooks = errors.New("failed to retrieve books")
	ErrFailedToRetrieveBook  = errors.New("failed to retrieve book")

	// Expense operation errors
	ErrFailedToRetrieveExpenses = errors.New("failed to retrieve expenses")

	// Sale operation errors
	ErrFailedToRetrieveSales = errors.New("failed to retrieve sales")

	// Analytics operation errors
	ErrFailedToComputeReport    = errors.New("failed to compute financial report")
	ErrFailedToComputeTotals    = errors.New("failed to compute totals")
	ErrFailedToRefreshSnapshots = errors.New("failed to refresh report snapshots")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a stored category or sale type is not a known value).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)

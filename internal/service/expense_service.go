package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
	"github.com/ndewijer/Author-Ledger-Backend/internal/repository"
)

// ExpenseService handles expense-related business logic operations.
type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
	bookRepo    *repository.BookRepository
}

// NewExpenseService creates a new ExpenseService with the provided repository dependencies.
func NewExpenseService(
	expenseRepo *repository.ExpenseRepository,
	bookRepo *repository.BookRepository,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		bookRepo:    bookRepo,
	}
}

// GetExpenses retrieves expenses matching the filter.
func (s *ExpenseService) GetExpenses(ctx context.Context, filter model.ExpenseFilter) ([]model.Expense, error) {
	return s.expenseRepo.GetExpenses(ctx, filter)
}

// GetExpense retrieves a single expense by its ID.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (model.Expense, error) {
	return s.expenseRepo.GetExpense(ctx, expenseID)
}

// CreateExpense books a new expense. When a bookId is given the book must exist.
//
// Returns apperrors.ErrBookNotFound if the referenced book doesn't exist.
func (s *ExpenseService) CreateExpense(ctx context.Context, req request.CreateExpenseRequest) (*model.Expense, error) {
	category, err := model.ParseExpenseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if err := s.ensureBook(ctx, req.BookID); err != nil {
		return nil, err
	}

	expense := &model.Expense{
		ID:          uuid.New().String(),
		BookID:      req.BookID,
		Category:    category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.expenseRepo.InsertExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// UpdateExpense updates an existing expense with the provided fields.
//
// Returns apperrors.ErrExpenseNotFound if the expense doesn't exist, or
// apperrors.ErrBookNotFound if it is moved to a book that doesn't exist.
func (s *ExpenseService) UpdateExpense(ctx context.Context, expenseID string, req request.UpdateExpenseRequest) (*model.Expense, error) {
	expense, err := s.expenseRepo.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if req.BookID != nil {
		if err := s.ensureBook(ctx, *req.BookID); err != nil {
			return nil, err
		}
		expense.BookID = *req.BookID
	}
	if req.Category != nil {
		expense.Category, err = model.ParseExpenseCategory(*req.Category)
		if err != nil {
			return nil, err
		}
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Date != nil {
		expense.Date, err = parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
	}

	if err := s.expenseRepo.UpdateExpense(ctx, &expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &expense, nil
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.expenseRepo.DeleteExpense(ctx, expenseID)
}

func (s *ExpenseService) ensureBook(ctx context.Context, bookID string) error {
	if bookID == "" {
		return nil
	}
	_, err := s.bookRepo.GetBook(ctx, bookID)
	return err
}

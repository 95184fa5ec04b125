package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
	"github.com/ndewijer/Author-Ledger-Backend/internal/repository"
)

// BookService handles book-related business logic operations.
type BookService struct {
	bookRepo *repository.BookRepository
}

// NewBookService creates a new BookService with the provided repository dependencies.
func NewBookService(bookRepo *repository.BookRepository) *BookService {
	return &BookService{
		bookRepo: bookRepo,
	}
}

// GetBooks retrieves all books.
func (s *BookService) GetBooks(ctx context.Context) ([]model.Book, error) {
	return s.bookRepo.GetBooks(ctx)
}

// GetBook retrieves a single book by its ID.
func (s *BookService) GetBook(ctx context.Context, bookID string) (model.Book, error) {
	return s.bookRepo.GetBook(ctx, bookID)
}

// CreateBook creates a new book with a generated UUID.
// The request must already be validated; the launch date is parsed here.
func (s *BookService) CreateBook(ctx context.Context, req request.CreateBookRequest) (*model.Book, error) {
	launchDate, err := parseDate(req.LaunchDate)
	if err != nil {
		return nil, err
	}

	book := &model.Book{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		LaunchDate:  launchDate,
		Description: req.Description,
		Author:      req.Author,
		Publisher:   req.Publisher,
		Illustrator: req.Illustrator,
		ISBN:        req.ISBN,
		Genre:       req.Genre,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.bookRepo.InsertBook(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return book, nil
}

// UpdateBook updates the metadata of an existing book.
// Only provided fields in the request are updated; omitted fields remain unchanged.
//
// Returns apperrors.ErrBookNotFound if the book doesn't exist.
func (s *BookService) UpdateBook(ctx context.Context, bookID string, req request.UpdateBookRequest) (*model.Book, error) {
	book, err := s.bookRepo.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = strings.TrimSpace(*req.Title)
	}
	if req.LaunchDate != nil {
		book.LaunchDate, err = parseDate(*req.LaunchDate)
		if err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	if req.Illustrator != nil {
		book.Illustrator = *req.Illustrator
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}

	if err := s.bookRepo.UpdateBook(ctx, &book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return &book, nil
}

// DeleteBook removes a book together with its sales and stored snapshot.
// Expenses booked against it are kept and become unassigned.
//
// Returns apperrors.ErrBookNotFound if the book doesn't exist.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	return s.bookRepo.DeleteBook(ctx, bookID)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
	"github.com/ndewijer/Author-Ledger-Backend/internal/repository"
)

// SaleService handles sale-related business logic operations.
type SaleService struct {
	saleRepo *repository.SaleRepository
	bookRepo *repository.BookRepository
	logger   *zap.Logger
}

// NewSaleService creates a new SaleService with the provided repository dependencies.
func NewSaleService(
	saleRepo *repository.SaleRepository,
	bookRepo *repository.BookRepository,
	logger *zap.Logger,
) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		saleRepo: saleRepo,
		bookRepo: bookRepo,
		logger:   logger,
	}
}

// GetSales retrieves sales matching the filter.
func (s *SaleService) GetSales(ctx context.Context, filter model.SaleFilter) ([]model.Sale, error) {
	return s.saleRepo.GetSales(ctx, filter)
}

// GetSale retrieves a single sale by its ID.
func (s *SaleService) GetSale(ctx context.Context, saleID string) (model.Sale, error) {
	return s.saleRepo.GetSale(ctx, saleID)
}

// CreateSale records a new sale for an existing book.
//
// The stored totalAmount is authoritative for all analytics. When it is omitted it
// defaults to quantity x unitPrice; when it is given and differs from that product the
// sale is still stored and a warning is logged.
//
// Returns apperrors.ErrBookNotFound if the book doesn't exist.
func (s *SaleService) CreateSale(ctx context.Context, req request.CreateSaleRequest) (*model.Sale, error) {
	saleType, err := model.ParseSaleType(req.Type)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.bookRepo.GetBook(ctx, req.BookID); err != nil {
		return nil, err
	}

	sale := &model.Sale{
		ID:             uuid.New().String(),
		BookID:         req.BookID,
		Type:           saleType,
		Platform:       strings.TrimSpace(req.Platform),
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		DonationAmount: req.DonationAmount,
		IsGiveaway:     req.IsGiveaway,
		RoyaltyRate:    req.RoyaltyRate,
		RoyaltyAmount:  req.RoyaltyAmount,
		PublisherCut:   req.PublisherCut,
		PlatformFees:   req.PlatformFees,
		Date:           date,
		CreatedAt:      time.Now().UTC(),
	}
	if req.TotalAmount != nil {
		sale.TotalAmount = *req.TotalAmount
	} else {
		sale.TotalAmount = sale.ExpectedTotal()
	}

	s.checkTotal(sale)

	if err := s.saleRepo.InsertSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	return sale, nil
}

// UpdateSale updates an existing sale with the provided fields.
// The total is not recomputed when quantity or unit price change; send totalAmount to change it.
//
// Returns apperrors.ErrSaleNotFound if the sale doesn't exist, or
// apperrors.ErrBookNotFound if it is moved to a book that doesn't exist.
//
//nolint:gocyclo // One branch per optional field
func (s *SaleService) UpdateSale(ctx context.Context, saleID string, req request.UpdateSaleRequest) (*model.Sale, error) {
	sale, err := s.saleRepo.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if req.BookID != nil {
		if _, err := s.bookRepo.GetBook(ctx, *req.BookID); err != nil {
			return nil, err
		}
		sale.BookID = *req.BookID
	}
	if req.Type != nil {
		sale.Type, err = model.ParseSaleType(*req.Type)
		if err != nil {
			return nil, err
		}
	}
	if req.Platform != nil {
		sale.Platform = strings.TrimSpace(*req.Platform)
	}
	if req.Quantity != nil {
		sale.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		sale.UnitPrice = *req.UnitPrice
	}
	if req.TotalAmount != nil {
		sale.TotalAmount = *req.TotalAmount
	}
	if req.DonationAmount != nil {
		sale.DonationAmount = *req.DonationAmount
	}
	if req.IsGiveaway != nil {
		sale.IsGiveaway = *req.IsGiveaway
	}
	if req.RoyaltyRate != nil {
		sale.RoyaltyRate.Decimal, sale.RoyaltyRate.Valid = *req.RoyaltyRate, true
	}
	if req.RoyaltyAmount != nil {
		sale.RoyaltyAmount.Decimal, sale.RoyaltyAmount.Valid = *req.RoyaltyAmount, true
	}
	if req.PublisherCut != nil {
		sale.PublisherCut = *req.PublisherCut
	}
	if req.PlatformFees != nil {
		sale.PlatformFees = *req.PlatformFees
	}
	if req.Date != nil {
		sale.Date, err = parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
	}

	s.checkTotal(&sale)

	if err := s.saleRepo.UpdateSale(ctx, &sale); err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}

	return &sale, nil
}

// DeleteSale removes a sale.
func (s *SaleService) DeleteSale(ctx context.Context, saleID string) error {
	return s.saleRepo.DeleteSale(ctx, saleID)
}

// checkTotal logs sales whose stored total disagrees with quantity x unit price.
// Zero-total giveaways are expected to differ.
func (s *SaleService) checkTotal(sale *model.Sale) {
	expected := sale.ExpectedTotal()
	if sale.TotalAmount.Equal(expected) || (sale.IsGiveaway && sale.TotalAmount.IsZero()) {
		return
	}
	s.logger.Warn("sale total differs from quantity x unit price",
		zap.String("sale_id", sale.ID),
		zap.String("book_id", sale.BookID),
		zap.Int("quantity", sale.Quantity),
		zap.String("unit_price", sale.UnitPrice.String()),
		zap.String("total_amount", sale.TotalAmount.String()),
		zap.String("expected_total", expected.String()),
	)
}

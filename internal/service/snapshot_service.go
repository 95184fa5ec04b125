package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Author-Ledger-Backend/internal/analytics"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
	"github.com/ndewijer/Author-Ledger-Backend/internal/repository"
)

// SnapshotService materializes per-book reports into the report_snapshot table so the
// dashboard can list every book without recomputing from raw records.
type SnapshotService struct {
	analyticsService *AnalyticsService
	snapshotRepo     *repository.SnapshotRepository
	logger           *zap.Logger
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	analyticsService *AnalyticsService,
	snapshotRepo *repository.SnapshotRepository,
	logger *zap.Logger,
) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{
		analyticsService: analyticsService,
		snapshotRepo:     snapshotRepo,
		logger:           logger,
	}
}

// Refresh recomputes every book's report and replaces the stored snapshots.
// Returns the number of snapshots written.
func (s *SnapshotService) Refresh(ctx context.Context) (int, error) {
	start := time.Now()

	reports, err := s.analyticsService.Overview(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to compute reports: %w", err)
	}

	snapshots := make([]model.ReportSnapshot, 0, len(reports))
	for _, report := range reports {
		snapshot, err := newSnapshot(report)
		if err != nil {
			return 0, err
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := s.snapshotRepo.UpsertSnapshots(ctx, snapshots); err != nil {
		return 0, err
	}

	s.logger.Info("report snapshots refreshed",
		zap.Int("books", len(snapshots)),
		zap.Duration("duration", time.Since(start)),
	)

	return len(snapshots), nil
}

// GetSnapshots returns the stored snapshots of all books, ordered by title.
func (s *SnapshotService) GetSnapshots(ctx context.Context) ([]model.ReportSnapshot, error) {
	snapshots := []model.ReportSnapshot{}

	err := s.snapshotRepo.GetSnapshots(ctx, nil, func(snapshot model.ReportSnapshot) error {
		snapshots = append(snapshots, snapshot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}

// GetSnapshotReport decodes the full report stored for one book.
//
// Returns apperrors.ErrSnapshotNotFound if the book has not been materialized yet.
func (s *SnapshotService) GetSnapshotReport(ctx context.Context, bookID string) (analytics.AuthorFinancialAnalytics, error) {
	snapshot, err := s.snapshotRepo.GetSnapshot(ctx, bookID)
	if err != nil {
		return analytics.AuthorFinancialAnalytics{}, err
	}

	var report analytics.AuthorFinancialAnalytics
	if err := json.Unmarshal(snapshot.Payload, &report); err != nil {
		return analytics.AuthorFinancialAnalytics{}, fmt.Errorf("failed to decode snapshot for book %s: %w", bookID, err)
	}

	return report, nil
}

func newSnapshot(report analytics.AuthorFinancialAnalytics) (model.ReportSnapshot, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return model.ReportSnapshot{}, fmt.Errorf("failed to encode report for book %s: %w", report.BookID, err)
	}

	return model.ReportSnapshot{
		BookID:          report.BookID,
		BookTitle:       report.BookTitle,
		TotalInvestment: report.TotalInvestment,
		TotalRevenue:    report.TotalRevenue,
		NetProfit:       report.NetProfit,
		ROIPercentage:   report.ROIPercentage,
		ProgressPercent: report.BreakEven.ProgressPercent,
		FinancialHealth: string(report.Health),
		BreakevenStatus: report.BreakevenStatus,
		Payload:         payload,
		CalculatedAt:    report.GeneratedAt,
	}, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"

	"github.com/google/uuid"
)

// MonthlyWindow is the number of calendar months, current month included,
// covered by the monthly summary.
const MonthlyWindow = 12

type summaryService struct {
	summaryRepo repositories.SummaryRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
	now         func() time.Time
}

// NewSummaryService creates the aggregation service. A nil clock defaults to time.Now.
func NewSummaryService(
	summaryRepo repositories.SummaryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	now func() time.Time,
) SummaryServiceInterface {
	if now == nil {
		now = time.Now
	}

	return &summaryService{
		summaryRepo: summaryRepo,
		metrics:     metrics,
		logger:      logger,
		now:         now,
	}
}

// MonthlySummary totals the trailing MonthlyWindow months, most recent first.
// Months without expenses are omitted.
func (s *summaryService) MonthlySummary(ctx context.Context, userID uuid.UUID) ([]models.MonthlyTotal, error) {
	from, to := MonthlyRange(s.now())

	start := time.Now()
	rows, err := s.summaryRepo.MonthlyTotals(ctx, userID, from, to)
	s.metrics.RecordProcessingTime("summary_monthly", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly summary: %w", err)
	}

	return rows, nil
}

// CategorySummary totals the current month per category, including empty categories.
func (s *summaryService) CategorySummary(ctx context.Context, userID uuid.UUID) ([]models.CategoryTotal, error) {
	from, to := CurrentMonthRange(s.now())

	start := time.Now()
	rows, err := s.summaryRepo.CategoryTotals(ctx, userID, from, to)
	s.metrics.RecordProcessingTime("summary_category", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to compute category summary: %w", err)
	}

	return rows, nil
}

// MonthlyRange returns the half-open [from, to) window of the monthly summary for now, in UTC.
func MonthlyRange(now time.Time) (models.Date, models.Date) {
	current := models.DateOf(now.UTC()).FirstOfMonth()
	return current.AddMonths(-(MonthlyWindow - 1)), current.AddMonths(1)
}

// CurrentMonthRange returns the half-open [from, to) range of now's UTC month.
func CurrentMonthRange(now time.Time) (models.Date, models.Date) {
	current := models.DateOf(now.UTC()).FirstOfMonth()
	return current, current.AddMonths(1)
}

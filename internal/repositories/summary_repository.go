package repositories

import (
	"context"
	"fmt"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SummaryRepository computes per-user aggregates on read.
type SummaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepositoryInterface {
	return &SummaryRepository{db: db}
}

// yearMonthColumns returns the integer year and month expressions of
// expenses.expense_date for the connected dialect.
func yearMonthColumns(dialect string) (year, month string) {
	switch dialect {
	case "sqlite":
		return "CAST(strftime('%Y', expenses.expense_date) AS INTEGER)",
			"CAST(strftime('%m', expenses.expense_date) AS INTEGER)"
	default:
		return "EXTRACT(YEAR FROM expenses.expense_date)::int",
			"EXTRACT(MONTH FROM expenses.expense_date)::int"
	}
}

// MonthlyTotals groups the user's expenses in [from, to) by calendar month,
// most recent first. Months without expenses are absent.
func (r *SummaryRepository) MonthlyTotals(ctx context.Context, userID uuid.UUID, from, to models.Date) ([]models.MonthlyTotal, error) {
	year, month := yearMonthColumns(r.db.Dialector.Name())

	rows := make([]models.MonthlyTotal, 0)
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Select(fmt.Sprintf(
			"%s AS year, %s AS month, SUM(expenses.amount) AS total_amount, COUNT(*) AS expense_count",
			year, month,
		)).
		Scopes(ownedBy("expenses", userID)).
		Where("expenses.expense_date >= ? AND expenses.expense_date < ?", from, to).
		Group("year, month").
		Order("year DESC, month DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to compute monthly totals: %w", err)
	}

	for i := range rows {
		rows[i].TotalAmount = rows[i].TotalAmount.Round(2)
	}

	return rows, nil
}

// CategoryTotals returns every category of the user with its spend in
// [from, to), including categories with no expenses. Ordered by total
// descending, then name.
func (r *SummaryRepository) CategoryTotals(ctx context.Context, userID uuid.UUID, from, to models.Date) ([]models.CategoryTotal, error) {
	rows := make([]models.CategoryTotal, 0)
	if err := r.db.WithContext(ctx).
		Table("categories").
		Select("categories.id AS category_id, "+
			"categories.name AS category_name, "+
			"categories.color AS category_color, "+
			"categories.icon AS category_icon, "+
			"COALESCE(SUM(expenses.amount), 0) AS total_amount, "+
			"COUNT(expenses.id) AS expense_count").
		Joins("LEFT JOIN expenses ON expenses.category_id = categories.id "+
			"AND expenses.expense_date >= ? AND expenses.expense_date < ?", from, to).
		Scopes(ownedBy("categories", userID)).
		Group("categories.id, categories.name, categories.color, categories.icon").
		Order("total_amount DESC, categories.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to compute category totals: %w", err)
	}

	for i := range rows {
		rows[i].TotalAmount = rows[i].TotalAmount.Round(2)
	}

	return rows, nil
}

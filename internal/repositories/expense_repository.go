package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrExpenseNotFound = errors.New("expense not found")

const expenseWithCategoryColumns = "expenses.*, " +
	"categories.name AS category_name, " +
	"categories.color AS category_color, " +
	"categories.icon AS category_icon"

// ExpenseRepository handles database operations for expenses
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &ExpenseRepository{db: db}
}

// withCategory selects the caller's expenses joined to their category display fields.
func (r *ExpenseRepository) withCategory(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("expenses").
		Select(expenseWithCategoryColumns).
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Scopes(ownedBy("expenses", userID))
}

// List returns expenses newest first: expense_date, then created_at, then id, all descending.
// Date bounds are inclusive.
func (r *ExpenseRepository) List(ctx context.Context, userID uuid.UUID, filters models.ExpenseFilters) ([]models.ExpenseWithCategory, error) {
	query := r.withCategory(ctx, userID)

	if filters.StartDate != nil {
		query = query.Where("expenses.expense_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("expenses.expense_date <= ?", *filters.EndDate)
	}
	if filters.CategoryID != nil {
		query = query.Where("expenses.category_id = ?", *filters.CategoryID)
	}

	expenses := make([]models.ExpenseWithCategory, 0)
	if err := query.
		Order("expenses.expense_date DESC").
		Order("expenses.created_at DESC").
		Order("expenses.id DESC").
		Scan(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.ExpenseWithCategory, error) {
	var expense models.ExpenseWithCategory
	result := r.withCategory(ctx, userID).
		Where("expenses.id = ?", id).
		Limit(1).
		Scan(&expense)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get expense: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &expense, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) (*models.ExpenseWithCategory, error) {
	if expense == nil {
		return nil, errors.New("expense cannot be nil")
	}

	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		if isForeignKeyError(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	created, err := r.GetByID(ctx, expense.UserID, expense.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, ErrExpenseNotFound
	}

	return created, nil
}

// Update applies the given column values; updated_at is always refreshed.
func (r *ExpenseRepository) Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*models.ExpenseWithCategory, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Scopes(ownedBy("expenses", userID)).
		Where("expenses.id = ?", id).
		Updates(copyFields(fields, time.Now().UTC()))
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update expense: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrExpenseNotFound
	}

	updated, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrExpenseNotFound
	}

	return updated, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(ownedBy("expenses", userID)).
		Where("expenses.id = ?", id).
		Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

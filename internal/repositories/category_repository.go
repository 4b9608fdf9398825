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

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category name already exists")
	ErrCategoryInUse      = errors.New("category has expenses")
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &CategoryRepository{db: db}
}

// ListByUser returns the user's categories ordered by name.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := r.db.WithContext(ctx).
		Scopes(ownedBy("categories", userID)).
		Order("categories.name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).
		Scopes(ownedBy("categories", userID)).
		Where("categories.id = ?", id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrCategoryNameExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Update applies the given column values and returns the stored row.
func (r *CategoryRepository) Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*models.Category, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(ownedBy("categories", userID)).
		Where("categories.id = ?", id).
		Updates(copyFields(fields, time.Now().UTC()))
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return nil, ErrCategoryNameExists
		}
		return nil, fmt.Errorf("failed to update category: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrCategoryNotFound
	}

	category, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	return category, nil
}

// Delete removes a category. A foreign-key violation means expenses still reference it.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(ownedBy("categories", userID)).
		Where("categories.id = ?", id).
		Delete(&models.Category{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepository) Exists(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(ownedBy("categories", userID)).
		Where("categories.id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}

	return count > 0, nil
}

// ExistsByName reports whether the user already has a category called name,
// ignoring excludeID when set.
func (r *CategoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(ownedBy("categories", userID)).
		Where("categories.name = ?", name)
	if excludeID != nil {
		query = query.Where("categories.id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}

	return count > 0, nil
}

func (r *CategoryRepository) CountExpenses(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Scopes(ownedBy("expenses", userID)).
		Where("expenses.category_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count category expenses: %w", err)
	}

	return count, nil
}

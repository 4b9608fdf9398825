package repositories

import (
	"context"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	CreateWithDefaultCategories(ctx context.Context, user *models.User) ([]models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations.
// Every method is scoped to the owning user.
type CategoryRepositoryInterface interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*models.Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Exists(ctx context.Context, userID, id uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	CountExpenses(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

// ExpenseRepositoryInterface defines the contract for expense repository operations.
// Every method is scoped to the owning user.
type ExpenseRepositoryInterface interface {
	List(ctx context.Context, userID uuid.UUID, filters models.ExpenseFilters) ([]models.ExpenseWithCategory, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.ExpenseWithCategory, error)
	Create(ctx context.Context, expense *models.Expense) (*models.ExpenseWithCategory, error)
	Update(ctx context.Context, userID, id uuid.UUID, fields map[string]interface{}) (*models.ExpenseWithCategory, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SummaryRepositoryInterface computes read-side aggregates over a half-open date range [from, to).
type SummaryRepositoryInterface interface {
	MonthlyTotals(ctx context.Context, userID uuid.UUID, from, to models.Date) ([]models.MonthlyTotal, error)
	CategoryTotals(ctx context.Context, userID uuid.UUID, from, to models.Date) ([]models.CategoryTotal, error)
}

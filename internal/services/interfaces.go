package services

import (
	"context"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type TokenServiceInterface interface {
	IssueToken(userID uuid.UUID, issuedAt time.Time) (string, time.Time, error)
	VerifyToken(tokenString string) (uuid.UUID, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// CategoryServiceInterface defines category operations; every call is scoped to userID
type CategoryServiceInterface interface {
	ListCategories(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}

// ExpenseServiceInterface defines expense operations; every call is scoped to userID
type ExpenseServiceInterface interface {
	ListExpenses(ctx context.Context, userID uuid.UUID, filters models.ExpenseFilters) ([]models.ExpenseWithCategory, error)
	GetExpense(ctx context.Context, userID, expenseID uuid.UUID) (*models.ExpenseWithCategory, error)
	CreateExpense(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.ExpenseWithCategory, error)
	UpdateExpense(ctx context.Context, userID, expenseID uuid.UUID, req *dto.UpdateExpenseRequest) (*models.ExpenseWithCategory, error)
	DeleteExpense(ctx context.Context, userID, expenseID uuid.UUID) error
}

// SummaryServiceInterface computes read-only aggregates relative to the current UTC date
type SummaryServiceInterface interface {
	MonthlySummary(ctx context.Context, userID uuid.UUID) ([]models.MonthlyTotal, error)
	CategorySummary(ctx context.Context, userID uuid.UUID) ([]models.CategoryTotal, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

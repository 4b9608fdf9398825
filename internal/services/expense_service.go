package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"

	"github.com/google/uuid"
)

var ErrExpenseNotFound = errors.New("expense not found")

type expenseService struct {
	expenseRepo  repositories.ExpenseRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewExpenseService creates an expense service; categories are checked for ownership before use
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	return &expenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *expenseService) ListExpenses(ctx context.Context, userID uuid.UUID, filters models.ExpenseFilters) ([]models.ExpenseWithCategory, error) {
	expenses, err := s.expenseRepo.List(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) GetExpense(ctx context.Context, userID, expenseID uuid.UUID) (*models.ExpenseWithCategory, error) {
	expense, err := s.expenseRepo.GetByID(ctx, userID, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	return expense, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.ExpenseWithCategory, error) {
	if err := s.ensureCategory(ctx, userID, req.CategoryID); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      *req.Amount,
		Description: strings.TrimSpace(req.Description),
		ExpenseDate: req.ExpenseDate,
	}

	created, err := s.expenseRepo.Create(ctx, expense)
	if err != nil {
		return nil, mapExpenseError(err, "failed to create expense")
	}

	amount, _ := created.Amount.Float64()
	s.metrics.IncrementCounter("expense_mutation", map[string]string{"operation": "create"})
	s.metrics.RecordGauge("expense_amount", amount, nil)

	return created, nil
}

// UpdateExpense applies a partial update. An empty patch only refreshes updated_at.
func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID uuid.UUID, req *dto.UpdateExpenseRequest) (*models.ExpenseWithCategory, error) {
	fields := make(map[string]interface{}, 4)

	if req.CategoryID.Present() {
		if err := s.ensureCategory(ctx, userID, req.CategoryID.Value); err != nil {
			return nil, err
		}
		fields["category_id"] = req.CategoryID.Value
	}

	if req.Amount.Present() {
		fields["amount"] = req.Amount.Value
	}

	if req.Description.Present() {
		fields["description"] = strings.TrimSpace(req.Description.Value)
	}

	if req.ExpenseDate.Present() {
		fields["expense_date"] = req.ExpenseDate.Value
	}

	updated, err := s.expenseRepo.Update(ctx, userID, expenseID, fields)
	if err != nil {
		return nil, mapExpenseError(err, "failed to update expense")
	}

	s.metrics.IncrementCounter("expense_mutation", map[string]string{"operation": "update"})

	return updated, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID uuid.UUID) error {
	if err := s.expenseRepo.Delete(ctx, userID, expenseID); err != nil {
		return mapExpenseError(err, "failed to delete expense")
	}

	s.metrics.IncrementCounter("expense_mutation", map[string]string{"operation": "delete"})

	return nil
}

// ensureCategory reports ErrCategoryNotFound for categories the user does not own
func (s *expenseService) ensureCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	exists, err := s.categoryRepo.Exists(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}

	if !exists {
		s.logger.DebugContext(ctx, "expense references unknown category",
			"user_id", userID,
			"category_id", categoryID)
		return ErrCategoryNotFound
	}

	return nil
}

func mapExpenseError(err error, action string) error {
	switch {
	case errors.Is(err, repositories.ErrExpenseNotFound):
		return ErrExpenseNotFound
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return ErrCategoryNotFound
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

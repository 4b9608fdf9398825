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

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrCategoryInUse     = errors.New("category has expenses")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
)

type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewCategoryService creates a new CategoryServiceInterface instance
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *categoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if category == nil {
		return nil, ErrCategoryNotFound
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)

	taken, err := s.categoryRepo.ExistsByName(ctx, userID, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if taken {
		return nil, ErrCategoryNameTaken
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Color:  normalizeOptionalText(req.Color),
		Icon:   normalizeOptionalText(req.Icon),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, mapCategoryError(err, "failed to create category")
	}

	s.metrics.IncrementCounter("category_mutation", map[string]string{"operation": "create"})

	return category, nil
}

// UpdateCategory applies a partial update. Null color or icon clears the field.
func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	if !req.HasChanges() {
		return nil, ErrNoFieldsToUpdate
	}

	if _, err := s.GetCategory(ctx, userID, categoryID); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{}, 3)

	if req.Name.Present() {
		name := strings.TrimSpace(req.Name.Value)

		taken, err := s.categoryRepo.ExistsByName(ctx, userID, name, &categoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if taken {
			return nil, ErrCategoryNameTaken
		}

		fields["name"] = name
	}

	if req.Color.Set {
		fields["color"] = normalizeOptionalText(req.Color.Ptr())
	}

	if req.Icon.Set {
		fields["icon"] = normalizeOptionalText(req.Icon.Ptr())
	}

	category, err := s.categoryRepo.Update(ctx, userID, categoryID, fields)
	if err != nil {
		return nil, mapCategoryError(err, "failed to update category")
	}

	s.metrics.IncrementCounter("category_mutation", map[string]string{"operation": "update"})

	return category, nil
}

// DeleteCategory refuses to delete a category that expenses still reference
func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	if _, err := s.GetCategory(ctx, userID, categoryID); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountExpenses(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to count category expenses: %w", err)
	}

	if count > 0 {
		s.logger.DebugContext(ctx, "refusing to delete category in use",
			"category_id", categoryID,
			"expense_count", count)
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(ctx, userID, categoryID); err != nil {
		return mapCategoryError(err, "failed to delete category")
	}

	s.metrics.IncrementCounter("category_mutation", map[string]string{"operation": "delete"})

	return nil
}

func mapCategoryError(err error, action string) error {
	switch {
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, repositories.ErrCategoryNameExists):
		return ErrCategoryNameTaken
	case errors.Is(err, repositories.ErrCategoryInUse):
		return ErrCategoryInUse
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

// normalizeOptionalText trims value and maps blank input to nil.
func normalizeOptionalText(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

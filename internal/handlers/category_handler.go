package handlers

import (
	stderrors "errors"
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles the caller's categories. Categories owned by other
// users are reported as not found.
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories returns every category of the caller ordered by name.
//
//	GET /categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.categoryService.ListCategories(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryListResponse(categories))
}

// GetCategory returns one category.
//
//	GET /categories/:id
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	category, err := h.categoryService.GetCategory(c.Request().Context(), userID, id)
	if err != nil {
		return sendCategoryError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// CreateCategory adds a category with a name unique for the caller.
//
//	POST /categories
//	201 dto.CategoryResponse
//	400 VALIDATION_001, VALIDATION_002, CATEGORY_002
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return sendBindError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return SendValidationError(c, err)
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), userID, &req)
	if err != nil {
		return sendCategoryError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

// UpdateCategory applies a partial update; null clears color or icon.
//
//	PUT /categories/:id
//	400 VALIDATION_005 when the body sets no field
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return sendBindError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return SendValidationError(c, err)
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), userID, id, &req)
	if err != nil {
		return sendCategoryError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// DeleteCategory removes a category that no expense references.
//
//	DELETE /categories/:id
//	204
//	400 CATEGORY_003 while expenses still use it
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), userID, id); err != nil {
		return sendCategoryError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func sendCategoryError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	case stderrors.Is(err, services.ErrCategoryNameTaken):
		return SendError(c, errors.CategoryNameTaken)
	case stderrors.Is(err, services.ErrCategoryInUse):
		return SendError(c, errors.CategoryInUse)
	case stderrors.Is(err, services.ErrNoFieldsToUpdate):
		return SendError(c, errors.ValidationNoFieldsToSet)
	default:
		return SendSystemError(c, err)
	}
}

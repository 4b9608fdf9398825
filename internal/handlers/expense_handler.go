package handlers

import (
	stderrors "errors"
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/models"
	"expense-tracker/internal/services"
	"expense-tracker/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles the caller's expenses.
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ListExpenses returns expenses newest first, optionally filtered by an
// inclusive date range and a category.
//
//	GET /expenses?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD&category_id=<uuid>
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.ExpenseListQuery
	if err := c.Bind(&query); err != nil {
		return sendBindError(c, err)
	}

	filters, code, detail := parseExpenseFilters(&query)
	if code != "" {
		return SendError(c, code, errors.WithDetails(detail))
	}

	expenses, err := h.expenseService.ListExpenses(c.Request().Context(), userID, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseListResponse(expenses))
}

// GetExpense returns one expense with its category.
//
//	GET /expenses/:id
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	expense, err := h.expenseService.GetExpense(c.Request().Context(), userID, id)
	if err != nil {
		return sendExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(expense))
}

// CreateExpense records an expense against one of the caller's categories.
//
//	POST /expenses
//	201 dto.ExpenseResponse
//	400 VALIDATION_001, VALIDATION_002
//	404 CATEGORY_001
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return sendBindError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return SendValidationError(c, err)
	}

	expense, err := h.expenseService.CreateExpense(c.Request().Context(), userID, &req)
	if err != nil {
		return sendExpenseError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewExpenseResponse(expense))
}

// UpdateExpense applies a partial update. An empty body only bumps updated_at.
//
//	PUT /expenses/:id
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	var req dto.UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return sendBindError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return SendValidationError(c, err)
	}

	expense, err := h.expenseService.UpdateExpense(c.Request().Context(), userID, id, &req)
	if err != nil {
		return sendExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(expense))
}

// DeleteExpense removes an expense.
//
//	DELETE /expenses/:id
//	204
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	if err := h.expenseService.DeleteExpense(c.Request().Context(), userID, id); err != nil {
		return sendExpenseError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// parseExpenseFilters converts raw query values. On failure it returns the
// error code and a detail naming the offending parameter.
func parseExpenseFilters(query *dto.ExpenseListQuery) (models.ExpenseFilters, errors.ErrorCode, string) {
	var filters models.ExpenseFilters

	if query.StartDate != "" {
		d, fieldErr := validation.Date("start_date", query.StartDate)
		if fieldErr != nil {
			return filters, errors.ValidationInvalidDate, fieldErr.Error()
		}
		filters.StartDate = &d
	}

	if query.EndDate != "" {
		d, fieldErr := validation.Date("end_date", query.EndDate)
		if fieldErr != nil {
			return filters, errors.ValidationInvalidDate, fieldErr.Error()
		}
		filters.EndDate = &d
	}

	if query.CategoryID != "" {
		id, err := uuid.Parse(query.CategoryID)
		if err != nil {
			return filters, errors.ValidationInvalidID, "category_id must be a valid UUID"
		}
		filters.CategoryID = &id
	}

	return filters, "", ""
}

func sendExpenseError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrExpenseNotFound):
		return SendError(c, errors.ExpenseNotFound)
	case stderrors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, errors.CategoryNotFound)
	default:
		return SendSystemError(c, err)
	}
}

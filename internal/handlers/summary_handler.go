package handlers

import (
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// SummaryHandler serves the read-only spending summaries.
type SummaryHandler struct {
	summaryService services.SummaryServiceInterface
}

func NewSummaryHandler(summaryService services.SummaryServiceInterface) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// Monthly returns totals for each month with spending in the trailing
// twelve-month window, newest first.
//
//	GET /summaries/monthly
func (h *SummaryHandler) Monthly(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	rows, err := h.summaryService.MonthlySummary(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewMonthlySummaryResponse(rows))
}

// ByCategory returns current-month totals for every category, including
// categories without spending.
//
//	GET /summaries/categories
func (h *SummaryHandler) ByCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	rows, err := h.summaryService.CategorySummary(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategorySummaryResponse(rows))
}

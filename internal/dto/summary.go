package dto

import (
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
)

// MonthlySummaryResponse is one month of the trailing summary window.
type MonthlySummaryResponse struct {
	Year         int    `json:"year"`
	Month        string `json:"month"`
	TotalAmount  string `json:"total_amount"`
	ExpenseCount int64  `json:"expense_count"`
}

type CategorySummaryResponse struct {
	CategoryID    uuid.UUID `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	CategoryColor *string   `json:"category_color"`
	CategoryIcon  *string   `json:"category_icon"`
	TotalAmount   string    `json:"total_amount"`
	ExpenseCount  int64     `json:"expense_count"`
}

func NewMonthlySummaryResponse(rows []models.MonthlyTotal) []MonthlySummaryResponse {
	response := make([]MonthlySummaryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, MonthlySummaryResponse{
			Year:         row.Year,
			Month:        time.Month(row.Month).String(),
			TotalAmount:  FormatAmount(row.TotalAmount),
			ExpenseCount: row.ExpenseCount,
		})
	}
	return response
}

func NewCategorySummaryResponse(rows []models.CategoryTotal) []CategorySummaryResponse {
	response := make([]CategorySummaryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, CategorySummaryResponse{
			CategoryID:    row.CategoryID,
			CategoryName:  row.CategoryName,
			CategoryColor: row.CategoryColor,
			CategoryIcon:  row.CategoryIcon,
			TotalAmount:   FormatAmount(row.TotalAmount),
			ExpenseCount:  row.ExpenseCount,
		})
	}
	return response
}

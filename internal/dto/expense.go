package dto

import (
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense Request DTOs

// CreateExpenseRequest accepts amount as a JSON number or a decimal string.
type CreateExpenseRequest struct {
	CategoryID  uuid.UUID        `json:"category_id" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required,positive_amount,amount_scale,max_amount"`
	Description string           `json:"description" validate:"required,notblank,max=500"`
	ExpenseDate models.Date      `json:"expense_date" validate:"required"`
}

// UpdateExpenseRequest is a partial update; none of its fields accept null.
type UpdateExpenseRequest struct {
	CategoryID  Optional[uuid.UUID]       `json:"category_id" validate:"omitempty"`
	Amount      Optional[decimal.Decimal] `json:"amount" validate:"omitempty,positive_amount,amount_scale,max_amount"`
	Description Optional[string]          `json:"description" validate:"omitempty,max=500"`
	ExpenseDate Optional[models.Date]     `json:"expense_date" validate:"omitempty"`
}

func (r *UpdateExpenseRequest) HasChanges() bool {
	return r.CategoryID.Set || r.Amount.Set || r.Description.Set || r.ExpenseDate.Set
}

// ExpenseListQuery carries the raw list filters; dates are YYYY-MM-DD.
type ExpenseListQuery struct {
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
	CategoryID string `query:"category_id"`
}

// Expense Response DTOs

// ExpenseResponse renders amount as a two-decimal string.
type ExpenseResponse struct {
	ID            uuid.UUID   `json:"id"`
	UserID        uuid.UUID   `json:"user_id"`
	CategoryID    uuid.UUID   `json:"category_id"`
	CategoryName  string      `json:"category_name"`
	CategoryColor *string     `json:"category_color"`
	CategoryIcon  *string     `json:"category_icon"`
	Amount        string      `json:"amount"`
	Description   string      `json:"description"`
	ExpenseDate   models.Date `json:"expense_date"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// FormatAmount renders money with exactly two decimals.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func NewExpenseResponse(expense *models.ExpenseWithCategory) ExpenseResponse {
	return ExpenseResponse{
		ID:            expense.ID,
		UserID:        expense.UserID,
		CategoryID:    expense.CategoryID,
		CategoryName:  expense.CategoryName,
		CategoryColor: expense.CategoryColor,
		CategoryIcon:  expense.CategoryIcon,
		Amount:        FormatAmount(expense.Amount),
		Description:   expense.Description,
		ExpenseDate:   expense.ExpenseDate,
		CreatedAt:     expense.CreatedAt,
		UpdatedAt:     expense.UpdatedAt,
	}
}

func NewExpenseListResponse(expenses []models.ExpenseWithCategory) []ExpenseResponse {
	response := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		response = append(response, NewExpenseResponse(&expenses[i]))
	}
	return response
}

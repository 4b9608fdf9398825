package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyTotal is one (year, month) bucket of a user's expenses.
type MonthlyTotal struct {
	Year         int
	Month        int
	TotalAmount  decimal.Decimal
	ExpenseCount int64
}

// CategoryTotal aggregates a category's expenses over a date range.
// Categories without expenses in the range carry a zero total and count.
type CategoryTotal struct {
	CategoryID    uuid.UUID
	CategoryName  string
	CategoryColor *string
	CategoryIcon  *string
	TotalAmount   decimal.Decimal
	ExpenseCount  int64
}

package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")

	// MinAmount is the smallest positive amount an expense can carry.
	MinAmount = decimal.New(1, -2)
)

type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string          `gorm:"type:text;not null" json:"description"`
	ExpenseDate Date            `gorm:"not null;index" json:"expense_date"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

func (e *Expense) Validate() error {
	if e.UserID == uuid.Nil || e.CategoryID == uuid.Nil {
		return errors.New("expense owner and category are required")
	}

	if !e.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	if e.ExpenseDate.IsZero() {
		return errors.New("expense date is required")
	}

	return nil
}

func (e *Expense) TableName() string {
	return "expenses"
}

// ExpenseWithCategory is an expense joined with its category's display fields.
type ExpenseWithCategory struct {
	Expense
	CategoryName  string  `json:"category_name"`
	CategoryColor *string `json:"category_color"`
	CategoryIcon  *string `json:"category_icon"`
}

// ExpenseFilters narrows an expense listing; nil fields are ignored.
type ExpenseFilters struct {
	StartDate  *Date
	EndDate    *Date
	CategoryID *uuid.UUID
}

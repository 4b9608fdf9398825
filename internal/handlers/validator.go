package handlers

import (
	"expense-tracker/internal/validation"

	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator interface
type CustomValidator struct {
	validator *validation.Validator
}

// NewValidator creates a validator backed by the shared rule set
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.GetValidator()}
}

// Validate returns validation.Errors when any rule fails
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.ValidateStruct(i)
}

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	_ = v.RegisterValidation("amount_scale", validateAmountScale)
	_ = v.RegisterValidation("max_amount", validateMaxAmount)

	// Decimals, dates and ids validate as their string form; absent patch
	// fields validate as nil so omitempty skips them.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterCustomTypeFunc(dateValue, models.Date{})
	v.RegisterCustomTypeFunc(uuidValue, uuid.UUID{})
	v.RegisterCustomTypeFunc(optionalValue,
		dto.Optional[string]{},
		dto.Optional[decimal.Decimal]{},
		dto.Optional[uuid.UUID]{},
		dto.Optional[models.Date]{},
	)

	v.RegisterStructValidation(validateUpdateCategory, dto.UpdateCategoryRequest{})
	v.RegisterStructValidation(validateUpdateExpense, dto.UpdateExpenseRequest{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateStruct runs tag and struct-level validation. Failures come back as
// Errors ordered by struct field position.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	out := make(Errors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Rule:    ruleForTag(fe.Tag()),
			Message: formatValidationError(fe),
		})
	}

	order := fieldOrder(s)
	sort.SliceStable(out, func(i, j int) bool {
		return order[out[i].Field] < order[out[j].Field]
	})
	return out
}

// fieldOrder maps json field names to their declaration index.
func fieldOrder(s interface{}) map[string]int {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	order := make(map[string]int)
	if t.Kind() != reflect.Struct {
		return order
	}
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = t.Field(i).Name
		}
		order[name] = i
	}
	return order
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func dateValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(models.Date); ok {
		return d.String()
	}
	return nil
}

func uuidValue(field reflect.Value) interface{} {
	if id, ok := field.Interface().(uuid.UUID); ok && id != uuid.Nil {
		return id.String()
	}
	return ""
}

type validationValuer interface {
	ValidationValue() interface{}
}

func optionalValue(field reflect.Value) interface{} {
	if o, ok := field.Interface().(validationValuer); ok {
		return o.ValidationValue()
	}
	return nil
}

// Custom validation functions

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateHexColor lets blank values through; they are stored as NULL.
func validateHexColor(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value == "" || HexColor(fl.FieldName(), value) == nil
}

// fieldDecimal reads a decimal from a field already converted to its string form.
func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// validatePositiveAmount validates that an amount is greater than 0
func validatePositiveAmount(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && PositiveAmount(fl.FieldName(), d) == nil
}

// validateAmountScale validates that an amount has at most 2 decimal places
func validateAmountScale(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && AmountScale(fl.FieldName(), d) == nil
}

func validateMaxAmount(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && MaxAmount(fl.FieldName(), d) == nil
}

// Struct-level rules for patch bodies: a supplied field that cannot be
// cleared must not be null or blank.

func validateUpdateCategory(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.UpdateCategoryRequest)

	reportNullOrBlank(sl, req.Name, "name", "Name")
}

func validateUpdateExpense(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.UpdateExpenseRequest)

	if req.CategoryID.Set && (req.CategoryID.Null || req.CategoryID.Value == uuid.Nil) {
		sl.ReportError(req.CategoryID, "category_id", "CategoryID", "notnull", "")
	}
	if req.Amount.Set && req.Amount.Null {
		sl.ReportError(req.Amount, "amount", "Amount", "notnull", "")
	}
	reportNullOrBlank(sl, req.Description, "description", "Description")
	if req.ExpenseDate.Set && (req.ExpenseDate.Null || req.ExpenseDate.Value.IsZero()) {
		sl.ReportError(req.ExpenseDate, "expense_date", "ExpenseDate", "notnull", "")
	}
}

func reportNullOrBlank(sl validator.StructLevel, field dto.Optional[string], name, structName string) {
	if !field.Set {
		return
	}
	if field.Null {
		sl.ReportError(field, name, structName, "notnull", "")
		return
	}
	if strings.TrimSpace(field.Value) == "" {
		sl.ReportError(field, name, structName, "notblank", "")
	}
}

func ruleForTag(tag string) Rule {
	switch tag {
	case "required", "notblank", "notnull":
		return RuleRequired
	case "email":
		return RuleEmail
	case "min":
		return RuleMinLength
	case "max":
		return RuleMaxLength
	case "positive_amount":
		return RulePositiveAmount
	case "amount_scale":
		return RuleAmountScale
	case "max_amount":
		return RuleMaxAmount
	case "hex_color":
		return RuleHexColor
	case "uuid", "uuid4":
		return RuleUUID
	default:
		return Rule(tag)
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "notnull":
		return "cannot be null"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "positive_amount":
		return "must be greater than 0"
	case "amount_scale":
		return fmt.Sprintf("must have at most %d decimal places", MaxFractionDigits)
	case "max_amount":
		return fmt.Sprintf("must be at most %s", MaxAmountValue.StringFixed(MaxFractionDigits))
	case "hex_color":
		return "must be a hex color such as #RGB or #RRGGBB"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}

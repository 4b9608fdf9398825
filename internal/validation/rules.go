package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"expense-tracker/internal/models"
)

// Rule names a single validation constraint.
type Rule string

const (
	RuleRequired       Rule = "required"
	RuleEmail          Rule = "email"
	RuleMinLength      Rule = "min_length"
	RuleMaxLength      Rule = "max_length"
	RulePositiveAmount Rule = "positive_amount"
	RuleAmountScale    Rule = "amount_scale"
	RuleMaxAmount      Rule = "max_amount"
	RuleDate           Rule = "date"
	RuleHexColor       Rule = "hex_color"
	RuleUUID           Rule = "uuid"
)

// Rules lists every rule the package can report.
var Rules = []Rule{
	RuleRequired,
	RuleEmail,
	RuleMinLength,
	RuleMaxLength,
	RulePositiveAmount,
	RuleAmountScale,
	RuleMaxAmount,
	RuleDate,
	RuleHexColor,
	RuleUUID,
}

const (
	// MaxFractionDigits is the number of fractional digits an amount may carry.
	MaxFractionDigits = 2
	// MinPasswordLength is the default lower bound for passwords.
	MinPasswordLength = 8
)

// MaxAmountValue is the largest value a decimal(12,2) column holds.
var MaxAmountValue = decimal.RequireFromString("9999999999.99")

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// FieldError is one violated rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func newFieldError(field string, rule Rule, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// Errors is an ordered list of field errors.
type Errors []FieldError

func (e Errors) Error() string {
	return strings.Join(e.Details(), "; ")
}

// Details renders each error as "field message".
func (e Errors) Details() []string {
	details := make([]string, 0, len(e))
	for i := range e {
		details = append(details, e[i].Error())
	}
	return details
}

// Rules returns the violated rules in order.
func (e Errors) Rules() []Rule {
	rules := make([]Rule, 0, len(e))
	for i := range e {
		rules = append(rules, e[i].Rule)
	}
	return rules
}

// Collect drops nil results and returns nil when nothing failed.
func Collect(results ...*FieldError) error {
	var errs Errors
	for _, r := range results {
		if r != nil {
			errs = append(errs, *r)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func Required(field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return newFieldError(field, RuleRequired, "is required")
	}
	return nil
}

func Email(field, value string) *FieldError {
	if err := GetValidator().validate.Var(value, "required,email"); err != nil {
		return newFieldError(field, RuleEmail, "must be a valid email address")
	}
	return nil
}

// MinLength counts characters, not bytes.
func MinLength(field, value string, min int) *FieldError {
	if utf8.RuneCountInString(value) < min {
		return newFieldError(field, RuleMinLength, "must be at least %d characters long", min)
	}
	return nil
}

func MaxLength(field, value string, max int) *FieldError {
	if utf8.RuneCountInString(value) > max {
		return newFieldError(field, RuleMaxLength, "must be at most %d characters long", max)
	}
	return nil
}

func PositiveAmount(field string, amount decimal.Decimal) *FieldError {
	if !amount.IsPositive() {
		return newFieldError(field, RulePositiveAmount, "must be greater than 0")
	}
	return nil
}

func AmountScale(field string, amount decimal.Decimal) *FieldError {
	if !amount.Equal(amount.Round(MaxFractionDigits)) {
		return newFieldError(field, RuleAmountScale, "must have at most %d decimal places", MaxFractionDigits)
	}
	return nil
}

func MaxAmount(field string, amount decimal.Decimal) *FieldError {
	if amount.GreaterThan(MaxAmountValue) {
		return newFieldError(field, RuleMaxAmount, "must be at most %s", MaxAmountValue.StringFixed(MaxFractionDigits))
	}
	return nil
}

// Date checks a YYYY-MM-DD calendar date and returns it parsed.
func Date(field, value string) (models.Date, *FieldError) {
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, newFieldError(field, RuleDate, "must be a valid date in YYYY-MM-DD format")
	}
	return d, nil
}

func HexColor(field, value string) *FieldError {
	if !hexColorPattern.MatchString(value) {
		return newFieldError(field, RuleHexColor, "must be a hex color such as #RGB or #RRGGBB")
	}
	return nil
}

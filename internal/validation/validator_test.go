package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
)

type RulesTestSuite struct {
	suite.Suite
}

func TestRulesSuite(t *testing.T) {
	suite.Run(t, new(RulesTestSuite))
}

func (s *RulesTestSuite) TestRequired() {
	s.Nil(Required("name", "Food"))
	s.Equal(RuleRequired, Required("name", "   ").Rule)
	s.Equal(RuleRequired, Required("name", "").Rule)
}

func (s *RulesTestSuite) TestEmail() {
	s.Nil(Email("email", "a@x.com"))
	s.Equal(RuleEmail, Email("email", "not-an-email").Rule)
	s.Equal(RuleEmail, Email("email", "").Rule)
}

func (s *RulesTestSuite) TestLengthBounds() {
	s.Nil(MinLength("password", "password", 8))
	s.Equal(RuleMinLength, MinLength("password", "passwor", 8).Rule)

	s.Nil(MaxLength("name", strings.Repeat("a", 100), 100))
	s.Equal(RuleMaxLength, MaxLength("name", strings.Repeat("a", 101), 100).Rule)

	// multi-byte characters count once
	s.Nil(MaxLength("icon", strings.Repeat("🍔", 50), 50))
}

func (s *RulesTestSuite) TestAmountRules() {
	s.Nil(PositiveAmount("amount", decimal.RequireFromString("0.01")))
	s.NotNil(PositiveAmount("amount", decimal.Zero))
	s.NotNil(PositiveAmount("amount", decimal.RequireFromString("-5")))

	s.Nil(AmountScale("amount", decimal.RequireFromString("10.50")))
	s.Equal(RuleAmountScale, AmountScale("amount", decimal.RequireFromString("10.505")).Rule)

	s.Nil(MaxAmount("amount", MaxAmountValue))
	s.Equal(RuleMaxAmount, MaxAmount("amount", MaxAmountValue.Add(decimal.New(1, -2))).Rule)
}

func (s *RulesTestSuite) TestDate() {
	d, fe := Date("start_date", "2024-02-29")
	s.Nil(fe)
	s.Equal(models.NewDate(2024, 2, 29), d)

	_, fe = Date("start_date", "2023-02-29")
	s.Require().NotNil(fe)
	s.Equal(RuleDate, fe.Rule)

	_, fe = Date("start_date", "01/02/2024")
	s.NotNil(fe)
}

func (s *RulesTestSuite) TestHexColor() {
	s.Nil(HexColor("color", "#FFF"))
	s.Nil(HexColor("color", "#ff6b6b"))
	s.NotNil(HexColor("color", "red"))
	s.NotNil(HexColor("color", "#12345"))
}

func (s *RulesTestSuite) TestCollect() {
	s.NoError(Collect(nil, nil))

	err := Collect(Required("name", ""), nil, MinLength("password", "x", 8))
	var errs Errors
	s.Require().ErrorAs(err, &errs)
	s.Equal([]Rule{RuleRequired, RuleMinLength}, errs.Rules())
	s.Equal("name is required; password must be at least 8 characters long", errs.Error())
}

func TestValidateStruct_Register(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.ValidateStruct(&dto.RegisterRequest{
		Email:    "a@x.com",
		Password: "password1",
		FullName: "A",
	}))

	err := v.ValidateStruct(&dto.RegisterRequest{
		Email:    "bad",
		Password: "short",
		FullName: " ",
	})
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []Rule{RuleEmail, RuleMinLength, RuleRequired}, errs.Rules())
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "password", errs[1].Field)
	assert.Equal(t, "full_name", errs[2].Field)
}

func TestValidateStruct_CreateExpense(t *testing.T) {
	v := NewValidator()
	amount := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	valid := func() dto.CreateExpenseRequest {
		return dto.CreateExpenseRequest{
			CategoryID:  uuid.New(),
			Amount:      amount("0.01"),
			Description: "Coffee",
			ExpenseDate: models.NewDate(2024, 1, 1),
		}
	}

	req := valid()
	assert.NoError(t, v.ValidateStruct(&req))

	tests := []struct {
		name   string
		mutate func(r *dto.CreateExpenseRequest)
		field  string
		rule   Rule
	}{
		{"missing amount", func(r *dto.CreateExpenseRequest) { r.Amount = nil }, "amount", RuleRequired},
		{"zero amount", func(r *dto.CreateExpenseRequest) { r.Amount = amount("0") }, "amount", RulePositiveAmount},
		{"negative amount", func(r *dto.CreateExpenseRequest) { r.Amount = amount("-1.00") }, "amount", RulePositiveAmount},
		{"three decimals", func(r *dto.CreateExpenseRequest) { r.Amount = amount("1.001") }, "amount", RuleAmountScale},
		{"too large", func(r *dto.CreateExpenseRequest) { r.Amount = amount("10000000000") }, "amount", RuleMaxAmount},
		{"nil category", func(r *dto.CreateExpenseRequest) { r.CategoryID = uuid.Nil }, "category_id", RuleRequired},
		{"blank description", func(r *dto.CreateExpenseRequest) { r.Description = "  " }, "description", RuleRequired},
		{"long description", func(r *dto.CreateExpenseRequest) { r.Description = strings.Repeat("x", 501) }, "description", RuleMaxLength},
		{"missing date", func(r *dto.CreateExpenseRequest) { r.ExpenseDate = models.Date{} }, "expense_date", RuleRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := v.ValidateStruct(&req)
			var errs Errors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.rule, errs[0].Rule)
		})
	}
}

func TestValidateStruct_CreateCategory(t *testing.T) {
	v := NewValidator()
	color := "#FF6B6B"
	bad := "red"

	assert.NoError(t, v.ValidateStruct(&dto.CreateCategoryRequest{Name: "Food", Color: &color}))
	assert.NoError(t, v.ValidateStruct(&dto.CreateCategoryRequest{Name: "Food"}))

	blank := "   "
	assert.NoError(t, v.ValidateStruct(&dto.CreateCategoryRequest{Name: "Food", Color: &blank, Icon: &blank}))

	err := v.ValidateStruct(&dto.CreateCategoryRequest{Name: strings.Repeat("n", 101), Color: &bad})
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []Rule{RuleMaxLength, RuleHexColor}, errs.Rules())
}

func TestValidateStruct_UpdateCategoryPatch(t *testing.T) {
	v := NewValidator()

	decode := func(body string) *dto.UpdateCategoryRequest {
		var req dto.UpdateCategoryRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		return &req
	}

	assert.NoError(t, v.ValidateStruct(decode(`{}`)))
	assert.NoError(t, v.ValidateStruct(decode(`{"color": null, "icon": null}`)))
	assert.NoError(t, v.ValidateStruct(decode(`{"name": "Groceries", "color": "#abc"}`)))
	assert.NoError(t, v.ValidateStruct(decode(`{"color": "  "}`)))

	var errs Errors
	require.ErrorAs(t, v.ValidateStruct(decode(`{"name": null}`)), &errs)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, RuleRequired, errs[0].Rule)
	assert.Equal(t, "cannot be null", errs[0].Message)

	require.ErrorAs(t, v.ValidateStruct(decode(`{"name": ""}`)), &errs)
	assert.Equal(t, "must not be blank", errs[0].Message)

	require.ErrorAs(t, v.ValidateStruct(decode(`{"color": "blue"}`)), &errs)
	assert.Equal(t, RuleHexColor, errs[0].Rule)
}

func TestValidateStruct_UpdateExpensePatch(t *testing.T) {
	v := NewValidator()

	decode := func(body string) *dto.UpdateExpenseRequest {
		var req dto.UpdateExpenseRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		return &req
	}

	assert.NoError(t, v.ValidateStruct(decode(`{}`)))
	assert.NoError(t, v.ValidateStruct(decode(`{"amount": "12.50", "expense_date": "2024-03-01"}`)))

	var errs Errors
	require.ErrorAs(t, v.ValidateStruct(decode(`{"amount": 0}`)), &errs)
	assert.Equal(t, RulePositiveAmount, errs[0].Rule)

	require.ErrorAs(t, v.ValidateStruct(decode(`{"amount": null, "description": null}`)), &errs)
	assert.Equal(t, []Rule{RuleRequired, RuleRequired}, errs.Rules())
	assert.Equal(t, "amount", errs[0].Field)
	assert.Equal(t, "description", errs[1].Field)
}

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/models"
	"expense-tracker/internal/services"
	"expense-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerSuite))
}

type ExpenseHandlerSuite struct {
	handlerSuite
	ctrl           *gomock.Controller
	expenseService *service_mocks.MockExpenseServiceInterface
	handler        *ExpenseHandler
	categoryID     uuid.UUID
}

func (s *ExpenseHandlerSuite) SetupTest() {
	s.setupEcho()
	s.ctrl = gomock.NewController(s.T())
	s.expenseService = service_mocks.NewMockExpenseServiceInterface(s.ctrl)
	s.handler = NewExpenseHandler(s.expenseService)
	s.categoryID = uuid.New()
}

func (s *ExpenseHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ExpenseHandlerSuite) expense(amount string) *models.ExpenseWithCategory {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &models.ExpenseWithCategory{
		Expense: models.Expense{
			ID:          uuid.New(),
			UserID:      s.userID,
			CategoryID:  s.categoryID,
			Amount:      decimal.RequireFromString(amount),
			Description: "Lunch",
			ExpenseDate: models.NewDate(2024, 1, 1),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		CategoryName: "Other",
	}
}

func (s *ExpenseHandlerSuite) TestListExpenses_Filters() {
	start := models.NewDate(2024, 1, 1)
	end := models.NewDate(2024, 1, 31)
	filters := models.ExpenseFilters{StartDate: &start, EndDate: &end, CategoryID: &s.categoryID}

	s.expenseService.EXPECT().ListExpenses(gomock.Any(), s.userID, filters).
		Return([]models.ExpenseWithCategory{*s.expense("10")}, nil).Times(1)

	target := fmt.Sprintf("/expenses?start_date=2024-01-01&end_date=2024-01-31&category_id=%s", s.categoryID)
	c, rec := s.request(http.MethodGet, target, "")
	s.NoError(s.handler.ListExpenses(c))

	s.Equal(http.StatusOK, rec.Code)
	var response []dto.ExpenseResponse
	s.decode(rec, &response)
	s.Require().Len(response, 1)
	s.Equal("10.00", response[0].Amount)
	s.Equal("Other", response[0].CategoryName)
	s.Equal("2024-01-01", response[0].ExpenseDate.String())
}

func (s *ExpenseHandlerSuite) TestListExpenses_NoFilters() {
	s.expenseService.EXPECT().ListExpenses(gomock.Any(), s.userID, models.ExpenseFilters{}).Return(nil, nil).Times(1)

	c, rec := s.request(http.MethodGet, "/expenses", "")
	s.NoError(s.handler.ListExpenses(c))

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *ExpenseHandlerSuite) TestListExpenses_BadQuery() {
	tests := []struct {
		name  string
		query string
		code  errors.ErrorCode
	}{
		{"impossible date", "start_date=2023-02-29", errors.ValidationInvalidDate},
		{"wrong layout", "end_date=01/31/2024", errors.ValidationInvalidDate},
		{"bad category", "category_id=abc", errors.ValidationInvalidID},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			c, rec := s.request(http.MethodGet, "/expenses?"+tt.query, "")
			s.NoError(s.handler.ListExpenses(c))

			s.Equal(http.StatusBadRequest, rec.Code)
			body := s.decodeError(rec)
			s.Equal(string(tt.code), body.Code)
			s.Len(body.Details, 1)
		})
	}
}

func (s *ExpenseHandlerSuite) TestCreateExpense_Created() {
	created := s.expense("10.00")
	s.expenseService.EXPECT().CreateExpense(gomock.Any(), s.userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, req *dto.CreateExpenseRequest) (*models.ExpenseWithCategory, error) {
			s.Equal(s.categoryID, req.CategoryID)
			s.True(req.Amount.Equal(decimal.RequireFromString("10")))
			s.Equal(models.NewDate(2024, 1, 1), req.ExpenseDate)
			return created, nil
		}).Times(1)

	body := fmt.Sprintf(`{"category_id":%q,"amount":10.00,"description":"Lunch","expense_date":"2024-01-01"}`, s.categoryID)
	c, rec := s.request(http.MethodPost, "/expenses", body)
	s.NoError(s.handler.CreateExpense(c))

	s.Equal(http.StatusCreated, rec.Code)
	var response dto.ExpenseResponse
	s.decode(rec, &response)
	s.Equal("10.00", response.Amount)
	s.Equal(created.ID, response.ID)
}

func (s *ExpenseHandlerSuite) TestCreateExpense_AmountRules() {
	tests := []struct {
		name    string
		amount  string
		details []string
	}{
		{"zero", `0`, []string{"amount must be greater than 0"}},
		{"negative", `"-5.00"`, []string{"amount must be greater than 0"}},
		{"three decimals", `"1.005"`, []string{"amount must have at most 2 decimal places"}},
		{"too large", `"10000000000.00"`, []string{"amount must be at most 9999999999.99"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			body := fmt.Sprintf(`{"category_id":%q,"amount":%s,"description":"x","expense_date":"2024-01-01"}`, s.categoryID, tt.amount)
			c, rec := s.request(http.MethodPost, "/expenses", body)
			s.NoError(s.handler.CreateExpense(c))

			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal(tt.details, s.decodeError(rec).Details)
		})
	}
}

func (s *ExpenseHandlerSuite) TestCreateExpense_SmallestAmountAccepted() {
	s.expenseService.EXPECT().CreateExpense(gomock.Any(), s.userID, gomock.Any()).Return(s.expense("0.01"), nil).Times(1)

	body := fmt.Sprintf(`{"category_id":%q,"amount":"0.01","description":"Gum","expense_date":"2024-01-01"}`, s.categoryID)
	c, rec := s.request(http.MethodPost, "/expenses", body)
	s.NoError(s.handler.CreateExpense(c))

	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"amount":"0.01"`)
}

func (s *ExpenseHandlerSuite) TestCreateExpense_InvalidDateIsBodyError() {
	body := fmt.Sprintf(`{"category_id":%q,"amount":"1.00","description":"x","expense_date":"2024-13-01"}`, s.categoryID)
	c, rec := s.request(http.MethodPost, "/expenses", body)
	s.NoError(s.handler.CreateExpense(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationInvalidBody), s.decodeError(rec).Code)
}

func (s *ExpenseHandlerSuite) TestCreateExpense_MissingFields() {
	c, rec := s.request(http.MethodPost, "/expenses", `{}`)
	s.NoError(s.handler.CreateExpense(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal([]string{
		"category_id is required",
		"amount is required",
		"description is required",
		"expense_date is required",
	}, s.decodeError(rec).Details)
}

func (s *ExpenseHandlerSuite) TestCreateExpense_ForeignCategory() {
	s.expenseService.EXPECT().CreateExpense(gomock.Any(), s.userID, gomock.Any()).Return(nil, services.ErrCategoryNotFound).Times(1)

	body := fmt.Sprintf(`{"category_id":%q,"amount":"1.00","description":"x","expense_date":"2024-01-01"}`, uuid.New())
	c, rec := s.request(http.MethodPost, "/expenses", body)
	s.NoError(s.handler.CreateExpense(c))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.CategoryNotFound), s.decodeError(rec).Code)
}

func (s *ExpenseHandlerSuite) TestUpdateExpense_Partial() {
	existing := s.expense("12.50")
	s.expenseService.EXPECT().UpdateExpense(gomock.Any(), s.userID, existing.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, req *dto.UpdateExpenseRequest) (*models.ExpenseWithCategory, error) {
			s.True(req.Amount.Present())
			s.False(req.Description.Set)
			s.False(req.CategoryID.Set)
			return existing, nil
		}).Times(1)

	c, rec := s.request(http.MethodPut, "/expenses/"+existing.ID.String(), `{"amount":"12.50"}`)
	s.NoError(s.handler.UpdateExpense(s.withID(c, existing.ID.String())))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"amount":"12.50"`)
}

func (s *ExpenseHandlerSuite) TestUpdateExpense_NullRejected() {
	id := uuid.New()

	c, rec := s.request(http.MethodPut, "/expenses/"+id.String(), `{"description":null,"amount":null}`)
	s.NoError(s.handler.UpdateExpense(s.withID(c, id.String())))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal([]string{"amount cannot be null", "description cannot be null"}, s.decodeError(rec).Details)
}

func (s *ExpenseHandlerSuite) TestUpdateExpense_NotOwned() {
	id := uuid.New()
	s.expenseService.EXPECT().UpdateExpense(gomock.Any(), s.userID, id, gomock.Any()).Return(nil, services.ErrExpenseNotFound).Times(1)

	c, rec := s.request(http.MethodPut, "/expenses/"+id.String(), `{"description":"x"}`)
	s.NoError(s.handler.UpdateExpense(s.withID(c, id.String())))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.ExpenseNotFound), s.decodeError(rec).Code)
}

func (s *ExpenseHandlerSuite) TestGetExpense() {
	existing := s.expense("3.10")
	s.expenseService.EXPECT().GetExpense(gomock.Any(), s.userID, existing.ID).Return(existing, nil).Times(1)

	c, rec := s.request(http.MethodGet, "/expenses/"+existing.ID.String(), "")
	s.NoError(s.handler.GetExpense(s.withID(c, existing.ID.String())))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"amount":"3.10"`)
}

func (s *ExpenseHandlerSuite) TestDeleteExpense() {
	id := uuid.New()
	s.expenseService.EXPECT().DeleteExpense(gomock.Any(), s.userID, id).Return(nil).Times(1)

	c, rec := s.request(http.MethodDelete, "/expenses/"+id.String(), "")
	s.NoError(s.handler.DeleteExpense(s.withID(c, id.String())))

	s.Equal(http.StatusNoContent, rec.Code)

	c, rec = s.request(http.MethodDelete, "/expenses/bad", "")
	s.NoError(s.handler.DeleteExpense(s.withID(c, "bad")))
	s.Equal(http.StatusBadRequest, rec.Code)
}

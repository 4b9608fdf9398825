package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

var allCodes = []ErrorCode{
	AuthInvalidCredentials,
	AuthMissingToken,
	AuthExpiredToken,
	AuthInvalidTokenFormat,
	ValidationGeneral,
	ValidationInvalidBody,
	ValidationInvalidID,
	ValidationInvalidDate,
	ValidationNoFieldsToSet,
	UserNotFound,
	UserEmailTaken,
	CategoryNotFound,
	CategoryNameTaken,
	CategoryInUse,
	ExpenseNotFound,
	RouteNotFound,
	RouteMethodNotAllowed,
	SystemInternalError,
	SystemDatabaseError,
	SystemServiceUnavailable,
	SystemUnexpectedError,
}

type CodesTestSuite struct {
	suite.Suite
}

func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{"invalid credentials", AuthInvalidCredentials, "Invalid credentials"},
		{"duplicate email", UserEmailTaken, "Email already registered"},
		{"duplicate category", CategoryNameTaken, "Category name already exists"},
		{"category in use", CategoryInUse, "Cannot delete category with existing expenses"},
		{"empty patch", ValidationNoFieldsToSet, "No fields to update"},
		{"expense not found", ExpenseNotFound, "Expense not found"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	s.Equal("An error occurred", GetErrorMessage("INVALID_CODE"))
}

func (s *CodesTestSuite) TestIsValidErrorCode() {
	for _, code := range allCodes {
		s.True(IsValidErrorCode(code), "expected %s to be registered", code)
	}

	for _, code := range []ErrorCode{"", "AUTH_999", "UNKNOWN"} {
		s.False(IsValidErrorCode(code), "expected %q to be unknown", code)
	}
}

func (s *CodesTestSuite) TestCodesAreUnique() {
	seen := make(map[ErrorCode]bool)
	for _, code := range allCodes {
		s.False(seen[code], "duplicate error code %s", code)
		seen[code] = true
	}
}

func (s *CodesTestSuite) TestCodesFollowPrefixConvention() {
	prefixes := []string{"AUTH_", "VALIDATION_", "USER_", "CATEGORY_", "EXPENSE_", "ROUTE_", "SYSTEM_"}

	for _, code := range allCodes {
		matched := false
		for _, prefix := range prefixes {
			if strings.HasPrefix(string(code), prefix) {
				matched = true
				break
			}
		}
		s.True(matched, "code %s has no known prefix", code)
	}
}

func (s *CodesTestSuite) TestAllCodesHaveSpecificMessages() {
	for _, code := range allCodes {
		message := GetErrorMessage(code)
		s.NotEmpty(message)
		s.NotEqual("An error occurred", message, "code %s should have a specific message", code)
	}
}

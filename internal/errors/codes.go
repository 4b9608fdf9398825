package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationInvalidBody   ErrorCode = "VALIDATION_002"
	ValidationInvalidID     ErrorCode = "VALIDATION_003"
	ValidationInvalidDate   ErrorCode = "VALIDATION_004"
	ValidationNoFieldsToSet ErrorCode = "VALIDATION_005"
)

// User error codes (USER_*)
const (
	UserNotFound   ErrorCode = "USER_001"
	UserEmailTaken ErrorCode = "USER_002"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound  ErrorCode = "CATEGORY_001"
	CategoryNameTaken ErrorCode = "CATEGORY_002"
	CategoryInUse     ErrorCode = "CATEGORY_003"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound ErrorCode = "EXPENSE_001"
)

// Routing error codes (ROUTE_*), raised by the framework rather than handlers
const (
	RouteNotFound         ErrorCode = "ROUTE_001"
	RouteMethodNotAllowed ErrorCode = "ROUTE_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemUnexpectedError    ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials: "Invalid credentials",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token",

	ValidationGeneral:       "Validation failed",
	ValidationInvalidBody:   "Invalid request body",
	ValidationInvalidID:     "Invalid resource identifier",
	ValidationInvalidDate:   "Invalid date, expected YYYY-MM-DD",
	ValidationNoFieldsToSet: "No fields to update",

	UserNotFound:   "User not found",
	UserEmailTaken: "Email already registered",

	CategoryNotFound:  "Category not found",
	CategoryNameTaken: "Category name already exists",
	CategoryInUse:     "Cannot delete category with existing expenses",

	ExpenseNotFound: "Expense not found",

	RouteNotFound:         "Resource not found",
	RouteMethodNotAllowed: "Method not allowed",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemUnexpectedError:    "An unexpected error occurred",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}

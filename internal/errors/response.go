package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorResponse is the uniform error body. Error always carries a human-readable message.
type ErrorResponse struct {
	Message string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id,omitempty"`
}

// ErrorOption is a functional option for configuring error responses
type ErrorOption func(*ErrorResponse)

// WithDetails adds detail messages to the error response
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Details = details
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Message = message
	}
}

// NewErrorResponse creates a standardized error response with the given error code and trace ID
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Message: GetErrorMessage(code),
		Code:    string(code),
		TraceID: traceID,
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// NewValidationErrorFromList builds a VALIDATION_001 response whose message
// enumerates every failed rule, in the order given.
func NewValidationErrorFromList(details []string, traceID string) *ErrorResponse {
	message := GetErrorMessage(ValidationGeneral)
	if len(details) > 0 {
		message = fmt.Sprintf("%s: %s", message, strings.Join(details, "; "))
	}

	return &ErrorResponse{
		Message: message,
		Code:    string(ValidationGeneral),
		Details: details,
		TraceID: traceID,
	}
}

// WrapSystemError wraps an internal error with a generic system error message.
// The internal error is returned separately for server-side logging.
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemInternalError, traceID), err
}

// GetHTTPStatus returns the appropriate HTTP status code for the error code
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	// Conflicts are reported as 400 alongside validation failures.
	case ValidationGeneral, ValidationInvalidBody, ValidationInvalidID,
		ValidationInvalidDate, ValidationNoFieldsToSet,
		UserEmailTaken, CategoryNameTaken, CategoryInUse:
		return http.StatusBadRequest

	case AuthInvalidCredentials, AuthMissingToken, AuthExpiredToken, AuthInvalidTokenFormat:
		return http.StatusUnauthorized

	case UserNotFound, CategoryNotFound, ExpenseNotFound, RouteNotFound:
		return http.StatusNotFound

	case RouteMethodNotAllowed:
		return http.StatusMethodNotAllowed

	case SystemServiceUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetHTTPStatus returns the HTTP status code for the error response
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Code))
}

// IsClientError returns true if the error is a 4xx client error
func (er *ErrorResponse) IsClientError() bool {
	status := er.GetHTTPStatus()
	return status >= 400 && status < 500
}

// IsServerError returns true if the error is a 5xx server error
func (er *ErrorResponse) IsServerError() bool {
	return er.GetHTTPStatus() >= 500
}

func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Code, er.Message, er.TraceID)
}

package handlers

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"expense-tracker/internal/errors"
	"expense-tracker/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Every error leaves a handler through SendError, SendValidationError or
// SendSystemError. Anything returned as a plain error falls through to the
// echo HTTPErrorHandler, which renders the same body.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

var apiErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "api_errors_total",
		Help: "Total number of API errors by code, endpoint, and status",
	},
	[]string{"code", "endpoint", "status"},
)

// RecordAPIError counts one error response against the matched route.
func RecordAPIError(c echo.Context, code string, status int) {
	apiErrorsTotal.WithLabelValues(code, c.Path(), strconv.Itoa(status)).Inc()
}

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

func send(c echo.Context, response *errors.ErrorResponse) error {
	status := response.GetHTTPStatus()
	RecordAPIError(c, response.Code, status)
	return c.JSON(status, response)
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	return send(c, errors.NewErrorResponse(code, getTraceID(c), opts...))
}

// SendValidationError renders validation.Errors as VALIDATION_001. Any other
// error is treated as internal.
func SendValidationError(c echo.Context, err error) error {
	var validationErr validation.Errors
	if !stderrors.As(err, &validationErr) {
		return SendSystemError(c, err)
	}
	return send(c, errors.NewValidationErrorFromList(validationErr.Details(), getTraceID(c)))
}

// SendSystemError logs the internal error and responds with the generic SYSTEM_001 body.
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internal := errors.WrapSystemError(err, traceID)

	slog.ErrorContext(c.Request().Context(), "Internal error",
		"trace_id", traceID,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"error", internal,
	)

	RecordAPIError(c, errorResponse.Code, http.StatusInternalServerError)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// sendBindError reports a body that could not be decoded into the request type.
func sendBindError(c echo.Context, err error) error {
	detail := err.Error()
	var echoErr *echo.HTTPError
	if stderrors.As(err, &echoErr) {
		detail = fmt.Sprintf("%v", echoErr.Message)
	}
	return SendError(c, errors.ValidationInvalidBody, errors.WithDetails(detail))
}

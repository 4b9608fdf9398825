package middleware

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"expense-tracker/internal/errors"
	"expense-tracker/internal/handlers"
	"expense-tracker/internal/validation"

	"github.com/labstack/echo/v4"
)

// CustomHTTPErrorHandler is a custom error handler for Echo that formats errors
// as standardized error responses and logs them appropriately
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)

	var (
		errorResponse *errors.ErrorResponse
		httpStatus    int
		validationErr validation.Errors
		echoErr       *echo.HTTPError
	)

	switch {
	case stderrors.As(err, &validationErr):
		errorResponse = errors.NewValidationErrorFromList(validationErr.Details(), traceID)
		httpStatus = http.StatusBadRequest
	case stderrors.As(err, &echoErr):
		errorResponse = errors.NewErrorResponse(mapHTTPStatusToErrorCode(echoErr.Code), traceID)
		if message := fmt.Sprintf("%v", echoErr.Message); message != http.StatusText(echoErr.Code) {
			errorResponse.Details = []string{message}
		}
		httpStatus = echoErr.Code
	default:
		errorResponse, _ = errors.WrapSystemError(err, traceID)
		httpStatus = errorResponse.GetHTTPStatus()
	}

	logLevel := slog.LevelWarn
	if httpStatus >= 500 {
		logLevel = slog.LevelError
	}

	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", errorResponse.Code,
		"status", httpStatus,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	handlers.RecordAPIError(c, errorResponse.Code, httpStatus)

	var sendErr error
	if c.Request().Method == http.MethodHead {
		sendErr = c.NoContent(httpStatus)
	} else {
		sendErr = c.JSON(httpStatus, errorResponse)
	}
	if sendErr != nil {
		slog.Error("Failed to send error response",
			"trace_id", traceID,
			"error", sendErr.Error(),
		)
	}
}

// mapHTTPStatusToErrorCode maps framework-raised HTTP statuses to error codes
func mapHTTPStatusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return errors.ValidationInvalidBody
	case http.StatusUnauthorized:
		return errors.AuthMissingToken
	case http.StatusNotFound:
		return errors.RouteNotFound
	case http.StatusMethodNotAllowed:
		return errors.RouteMethodNotAllowed
	case http.StatusInternalServerError:
		return errors.SystemInternalError
	case http.StatusServiceUnavailable:
		return errors.SystemServiceUnavailable
	default:
		return errors.SystemUnexpectedError
	}
}

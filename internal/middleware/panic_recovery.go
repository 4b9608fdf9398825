package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"expense-tracker/internal/errors"
	"expense-tracker/internal/handlers"

	"github.com/labstack/echo/v4"
)

// PanicRecovery turns a panic in any later handler into a SYSTEM_001 response.
func PanicRecovery(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				logger.ErrorContext(c.Request().Context(), "Panic recovered",
					"trace_id", GetTraceID(c),
					"panic", fmt.Sprintf("%v", r),
					"stack_trace", string(debug.Stack()),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				)

				if c.Response().Committed {
					return
				}
				if sendErr := handlers.SendError(c, errors.SystemInternalError); sendErr != nil {
					logger.Error("Failed to send panic recovery response",
						"trace_id", GetTraceID(c),
						"error", sendErr.Error(),
					)
				}
				err = nil
			}()

			return next(c)
		}
	}
}

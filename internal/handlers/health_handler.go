package handlers

import (
	"context"
	"net/http"

	"expense-tracker/internal/errors"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheckHandler serves the liveness and readiness probes
type HealthCheckHandler struct {
	db Pinger
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db Pinger) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

// Live reports that the process is serving requests. It never touches the database.
//
//	GET /health
func (h *HealthCheckHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Ready reports whether the database answers a ping.
//
//	GET /health/ready
//	503 SYSTEM_003 when the ping fails
func (h *HealthCheckHandler) Ready(c echo.Context) error {
	if h.db == nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	if err := h.db.PingContext(c.Request().Context()); err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

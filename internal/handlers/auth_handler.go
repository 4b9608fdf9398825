package handlers

import (
	stderrors "errors"
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"
	"expense-tracker/internal/validation"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates an account, seeds its default categories and returns a token.
//
//	POST /auth/register
//	201 dto.AuthResponse
//	400 VALIDATION_001, VALIDATION_002, USER_002
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return sendBindError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return SendValidationError(c, err)
	}

	response, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		return h.sendAuthError(c, err)
	}

	return c.JSON(http.StatusCreated, response)
}

// Login exchanges credentials for a token.
//
//	POST /auth/login
//	200 dto.AuthResponse
//	400 VALIDATION_001, VALIDATION_002
//	401 AUTH_001
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return sendBindError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return SendValidationError(c, err)
	}

	response, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		return h.sendAuthError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) sendAuthError(c echo.Context, err error) error {
	var validationErr validation.Errors

	switch {
	case stderrors.As(err, &validationErr):
		return SendValidationError(c, err)
	case stderrors.Is(err, services.ErrEmailAlreadyRegistered):
		return SendError(c, errors.UserEmailTaken)
	case stderrors.Is(err, services.ErrInvalidCredentials):
		return SendError(c, errors.AuthInvalidCredentials)
	default:
		return SendSystemError(c, err)
	}
}

package handlers

import (
	stderrors "errors"
	"net/http"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	authService services.AuthServiceInterface
}

func NewUserHandler(authService services.AuthServiceInterface) *UserHandler {
	return &UserHandler{authService: authService}
}

// Me returns the caller's profile.
//
//	GET /users/me
//	200 dto.UserResponse
//	401 AUTH_002..AUTH_004
//	404 USER_001 when the account was removed after the token was issued
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		if stderrors.Is(err, services.ErrUserNotFound) {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

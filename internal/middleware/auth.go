package middleware

import (
	stderrors "errors"

	"expense-tracker/internal/errors"
	"expense-tracker/internal/handlers"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// UserIDContextKey holds the authenticated user's uuid.UUID.
const UserIDContextKey = "user_id"

// RequireAuth rejects requests without a valid bearer token and stores the
// token subject under UserIDContextKey for handlers.
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			userID, err := tokenService.VerifyToken(token)
			if err != nil {
				if stderrors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			c.Set(UserIDContextKey, userID)
			return next(c)
		}
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expense-tracker/internal/config"
	"expense-tracker/internal/errors"
	"expense-tracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	jwtConfig    *config.JWTConfig
	tokenService services.TokenServiceInterface
	e            *echo.Echo
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.jwtConfig = &config.JWTConfig{
		Secret:              []byte("middleware-test-secret-0123456789abcdef"),
		Issuer:              "test-issuer",
		AccessTokenDuration: time.Hour,
	}
	s.tokenService = services.NewTokenService(s.jwtConfig)
	s.e = echo.New()
}

func (s *AuthMiddlewareSuite) serve(authHeader string) (*httptest.ResponseRecorder, bool) {
	called := false
	handler := RequireAuth(s.tokenService)(func(c echo.Context) error {
		called = true
		return c.JSON(http.StatusOK, map[string]interface{}{"user_id": c.Get(UserIDContextKey)})
	})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.Require().NoError(handler(c))
	return rec, called
}

func (s *AuthMiddlewareSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.NotEmpty(body.Message)
	return body.Code
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ValidToken() {
	userID := uuid.New()
	token, _, err := s.tokenService.IssueToken(userID, time.Now())
	s.Require().NoError(err)

	handler := RequireAuth(s.tokenService)(func(c echo.Context) error {
		s.Equal(userID, c.Get(UserIDContextKey))
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()

	s.NoError(handler(s.e.NewContext(req, rec)))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MissingAuthorizationHeader() {
	rec, called := s.serve("")

	s.False(called)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthMissingToken), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MalformedHeader() {
	for _, header := range []string{"Token abc", "Bearer", "Basic dXNlcjpwYXNz"} {
		rec, called := s.serve(header)

		s.False(called, header)
		s.Equal(http.StatusUnauthorized, rec.Code, header)
		s.Equal(string(errors.AuthInvalidTokenFormat), s.errorCode(rec), header)
	}
}

func (s *AuthMiddlewareSuite) TestRequireAuth_GarbageToken() {
	rec, called := s.serve("Bearer not.a.jwt")

	s.False(called)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthInvalidTokenFormat), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ExpiredToken() {
	past := services.NewTokenServiceWithClock(s.jwtConfig, func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	})
	token, _, err := past.IssueToken(uuid.New(), time.Now().Add(-2*time.Hour))
	s.Require().NoError(err)

	rec, called := s.serve("Bearer " + token)

	s.False(called)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthExpiredToken), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ForeignSecret() {
	other := services.NewTokenService(&config.JWTConfig{
		Secret:              []byte("some-other-secret-0123456789abcdef"),
		Issuer:              "test-issuer",
		AccessTokenDuration: time.Hour,
	})
	token, _, err := other.IssueToken(uuid.New(), time.Now())
	s.Require().NoError(err)

	rec, called := s.serve("Bearer " + token)

	s.False(called)
	s.Equal(string(errors.AuthInvalidTokenFormat), s.errorCode(rec))
}

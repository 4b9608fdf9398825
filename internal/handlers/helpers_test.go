package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"

	"expense-tracker/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// handlerSuite carries the echo instance and caller shared by handler suites.
type handlerSuite struct {
	suite.Suite
	e      *echo.Echo
	userID uuid.UUID
}

func (s *handlerSuite) setupEcho() {
	s.e = echo.New()
	s.e.Validator = NewValidator()
	s.userID = uuid.New()
}

// request builds a context for an authenticated caller. An empty body sends none.
func (s *handlerSuite) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := s.anonymous(method, target, body)
	c.Set(userIDContextKey, s.userID)
	return c, rec
}

func (s *handlerSuite) anonymous(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set(TraceIDContextKey, "handler-trace")
	return c, rec
}

func (s *handlerSuite) withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func (s *handlerSuite) decodeError(rec *httptest.ResponseRecorder) errors.ErrorResponse {
	var body errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.NotEmpty(body.Message)
	s.Equal("handler-trace", body.TraceID)
	return body
}

func (s *handlerSuite) decode(rec *httptest.ResponseRecorder, out interface{}) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out))
}

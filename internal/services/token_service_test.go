package services

import (
	"strings"
	"testing"
	"time"

	"expense-tracker/internal/config"
	"expense-tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TokenServiceTestSuite defines the test suite for TokenService
type TokenServiceTestSuite struct {
	suite.Suite
	secret   []byte
	issuer   string
	lifetime time.Duration
	issuedAt time.Time
	clock    time.Time
	service  TokenServiceInterface
}

// SetupTest runs before each test
func (s *TokenServiceTestSuite) SetupTest() {
	var err error
	s.secret, err = config.GenerateSecret()
	s.Require().NoError(err)

	s.issuer = "test-issuer"
	s.lifetime = 24 * time.Hour
	s.issuedAt = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	s.clock = s.issuedAt

	s.service = NewTokenServiceWithClock(s.jwtConfig(), func() time.Time { return s.clock })
}

func (s *TokenServiceTestSuite) jwtConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:              s.secret,
		Issuer:              s.issuer,
		AccessTokenDuration: s.lifetime,
	}
}

// TestTokenServiceSuite runs the test suite
func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) TestIssueToken_Claims() {
	userID := uuid.New()

	token, expiresAt, err := s.service.IssueToken(userID, s.issuedAt)
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal(s.issuedAt.Add(s.lifetime), expiresAt)

	claims := &models.CustomClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	s.Require().NoError(err)
	s.Equal(userID.String(), claims.UserID)
	s.Equal(userID.String(), claims.Subject)
	s.Equal(s.issuer, claims.Issuer)
	s.NotEmpty(claims.ID)
	s.Equal(s.issuedAt.Unix(), claims.IssuedAt.Unix())
	s.Equal(s.issuedAt.Unix(), claims.NotBefore.Unix())
}

func (s *TokenServiceTestSuite) TestIssueToken_UniqueJTI() {
	userID := uuid.New()
	first, _, err := s.service.IssueToken(userID, s.issuedAt)
	s.Require().NoError(err)
	second, _, err := s.service.IssueToken(userID, s.issuedAt)
	s.Require().NoError(err)
	s.NotEqual(first, second)
}

func (s *TokenServiceTestSuite) TestIssueToken_NilUser() {
	_, _, err := s.service.IssueToken(uuid.Nil, s.issuedAt)
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestVerifyToken_Valid() {
	userID := uuid.New()
	token, _, err := s.service.IssueToken(userID, s.issuedAt)
	s.Require().NoError(err)

	got, err := s.service.VerifyToken(token)
	s.NoError(err)
	s.Equal(userID, got)
}

func (s *TokenServiceTestSuite) TestVerifyToken_ExpiryBoundary() {
	userID := uuid.New()
	token, expiresAt, err := s.service.IssueToken(userID, s.issuedAt)
	s.Require().NoError(err)

	s.clock = expiresAt.Add(-time.Second)
	_, err = s.service.VerifyToken(token)
	s.NoError(err)

	s.clock = expiresAt.Add(time.Second)
	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestIssueToken_SubSecondIssueTime() {
	userID := uuid.New()
	issuedAt := s.issuedAt.Add(750 * time.Millisecond)

	token, expiresAt, err := s.service.IssueToken(userID, issuedAt)
	s.Require().NoError(err)
	s.Equal(s.issuedAt.Add(s.lifetime), expiresAt)

	claims := &models.CustomClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	s.Require().NoError(err)
	s.Equal(s.lifetime, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	s.clock = expiresAt.Add(-time.Millisecond)
	_, err = s.service.VerifyToken(token)
	s.NoError(err)

	s.clock = expiresAt.Add(time.Millisecond)
	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestVerifyToken_Empty() {
	_, err := s.service.VerifyToken("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceTestSuite) TestVerifyToken_Garbage() {
	_, err := s.service.VerifyToken("not.a.token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerifyToken_WrongSecret() {
	otherSecret, err := config.GenerateSecret()
	s.Require().NoError(err)

	cfg := s.jwtConfig()
	cfg.Secret = otherSecret
	other := NewTokenServiceWithClock(cfg, func() time.Time { return s.clock })

	token, _, err := other.IssueToken(uuid.New(), s.issuedAt)
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerifyToken_WrongIssuer() {
	cfg := s.jwtConfig()
	cfg.Issuer = "someone-else"
	other := NewTokenServiceWithClock(cfg, func() time.Time { return s.clock })

	token, _, err := other.IssueToken(uuid.New(), s.issuedAt)
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerifyToken_RejectsOtherAlgorithms() {
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(s.issuedAt.Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
	s.Require().NoError(err)
	_, err = s.service.VerifyToken(hs512)
	s.ErrorIs(err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.Require().NoError(err)
	_, err = s.service.VerifyToken(none)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerifyToken_MissingExpiry() {
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: s.issuer},
		UserID:           uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestVerifyToken_BadSubject() {
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(s.issuedAt.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	s.Require().NoError(err)

	_, err = s.service.VerifyToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "case insensitive", header: "bearer abc", want: "abc"},
		{name: "extra spaces", header: "Bearer   abc  ", want: "abc"},
		{name: "empty", header: "", wantErr: true},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "missing token", header: "Bearer ", wantErr: true},
		{name: "no scheme", header: strings.Repeat("a", 20), wantErr: true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.service.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				s.ErrorIs(err, ErrInvalidAuthHeader)
				return
			}
			s.NoError(err)
			s.Equal(tt.want, got)
		})
	}
}

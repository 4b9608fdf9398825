package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"expense-tracker/internal/config"
	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repositories"
	"expense-tracker/internal/validation"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
)

// AuthService handles registration, login and current-user lookup
type AuthService struct {
	userRepo          repositories.UserRepositoryInterface
	passwordService   PasswordServiceInterface
	tokenService      TokenServiceInterface
	metrics           MetricsRecorderInterface
	passwordMinLength int
	logger            *slog.Logger
	now               func() time.Time
}

// NewAuthService creates a new authentication service.
// A nil clock defaults to time.Now.
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	securityConfig *config.SecurityConfig,
	logger *slog.Logger,
	now func() time.Time,
) AuthServiceInterface {
	if now == nil {
		now = time.Now
	}

	minLength := securityConfig.PasswordMinLength
	if minLength < validation.MinPasswordLength {
		minLength = validation.MinPasswordLength
	}

	return &AuthService{
		userRepo:          userRepo,
		passwordService:   passwordService,
		tokenService:      tokenService,
		metrics:           metrics,
		passwordMinLength: minLength,
		logger:            logger,
		now:               now,
	}
}

// Register creates a user with the default category set and signs them in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if err := validation.Collect(validation.MinLength("password", req.Password, s.passwordMinLength)); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if exists {
		s.recordAuthEvent("register_conflict")
		return nil, ErrEmailAlreadyRegistered
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     strings.TrimSpace(req.FullName),
	}

	categories, err := s.userRepo.CreateWithDefaultCategories(ctx, user)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			s.recordAuthEvent("register_conflict")
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"seeded_categories", len(categories))
	s.recordAuthEvent("register")

	return s.issue(user)
}

// Login verifies credentials and issues a token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Same error for unknown email and wrong password.
	if user == nil || !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.recordAuthEvent("login_failed")
		return nil, ErrInvalidCredentials
	}

	s.recordAuthEvent("login")

	return s.issue(user)
}

// CurrentUser returns the user identified by a verified token
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokenService.IssueToken(user.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return dto.NewAuthResponse(user, token, expiresAt), nil
}

func (s *AuthService) recordAuthEvent(eventType string) {
	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": eventType})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"expense-tracker/internal/config"
	"expense-tracker/internal/handlers"
	"expense-tracker/internal/middleware"
	"expense-tracker/internal/repositories"
	"expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const bodyLimit = "1M"

// Options carries everything New needs. Zero values fall back to production
// defaults: the default Prometheus registry, slog.Default and time.Now.
type Options struct {
	Config     *config.Config
	DB         *gorm.DB
	Logger     *slog.Logger
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Now        func() time.Time
}

// Server is the HTTP API.
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *slog.Logger
}

// New wires repositories, services and handlers onto a fresh echo instance.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if opts.DB == nil {
		return nil, errors.New("server: database is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cfg := opts.Config

	userRepo := repositories.NewUserRepository(opts.DB)
	categoryRepo := repositories.NewCategoryRepository(opts.DB)
	expenseRepo := repositories.NewExpenseRepository(opts.DB)
	summaryRepo := repositories.NewSummaryRepository(opts.DB)

	metrics := services.NewPrometheusMetrics(opts.Registerer)
	tokenService := services.NewTokenServiceWithClock(&cfg.JWT, opts.Now)
	passwordService := services.NewPasswordService(&cfg.Security)

	authService := services.NewAuthService(userRepo, passwordService, tokenService, metrics, &cfg.Security, opts.Logger, opts.Now)
	categoryService := services.NewCategoryService(categoryRepo, metrics, opts.Logger)
	expenseService := services.NewExpenseService(expenseRepo, categoryRepo, metrics, opts.Logger)
	summaryService := services.NewSummaryService(summaryRepo, metrics, opts.Logger, opts.Now)

	var pinger handlers.Pinger
	if sqlDB, err := opts.DB.DB(); err == nil {
		pinger = sqlDB
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Logger, middleware.NewHTTPMetrics(opts.Registerer)))
	e.Use(middleware.PanicRecovery(opts.Logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
		MaxAge:        int((12 * time.Hour).Seconds()),
	}))
	e.Use(echomw.BodyLimit(bodyLimit))
	if cfg.Server.RequestTimeout > 0 {
		e.Use(echomw.ContextTimeout(cfg.Server.RequestTimeout))
	}

	registerRoutes(e, routeHandlers{
		auth:       handlers.NewAuthHandler(authService),
		user:       handlers.NewUserHandler(authService),
		category:   handlers.NewCategoryHandler(categoryService),
		expense:    handlers.NewExpenseHandler(expenseService),
		summary:    handlers.NewSummaryHandler(summaryService),
		health:     handlers.NewHealthCheckHandler(pinger),
		metrics:    metricsHandler(opts.Gatherer),
		requireJWT: middleware.RequireAuth(tokenService),
	})

	return &Server{echo: e, config: cfg, logger: opts.Logger}, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Starting HTTP server", "addr", addr, "environment", s.config.Server.Environment)

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

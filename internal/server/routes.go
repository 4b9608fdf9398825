package server

import (
	"expense-tracker/internal/handlers"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routeHandlers struct {
	auth       *handlers.AuthHandler
	user       *handlers.UserHandler
	category   *handlers.CategoryHandler
	expense    *handlers.ExpenseHandler
	summary    *handlers.SummaryHandler
	health     *handlers.HealthCheckHandler
	metrics    echo.HandlerFunc
	requireJWT echo.MiddlewareFunc
}

// registerRoutes mounts the probes at the root and the API under /api: public
// auth endpoints, then one authenticated group per resource. Groups carry a
// real prefix so unknown paths still answer 404 rather than 401.
func registerRoutes(e *echo.Echo, h routeHandlers) {
	e.GET("/health", h.health.Live)
	e.GET("/health/ready", h.health.Ready)
	e.GET("/metrics", h.metrics)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.auth.Register)
	auth.POST("/login", h.auth.Login)

	users := api.Group("/users", h.requireJWT)
	users.GET("/me", h.user.Me)

	categories := api.Group("/categories", h.requireJWT)
	categories.GET("", h.category.ListCategories)
	categories.POST("", h.category.CreateCategory)
	categories.GET("/:id", h.category.GetCategory)
	categories.PUT("/:id", h.category.UpdateCategory)
	categories.DELETE("/:id", h.category.DeleteCategory)

	expenses := api.Group("/expenses", h.requireJWT)
	expenses.GET("", h.expense.ListExpenses)
	expenses.POST("", h.expense.CreateExpense)
	expenses.GET("/:id", h.expense.GetExpense)
	expenses.PUT("/:id", h.expense.UpdateExpense)
	expenses.DELETE("/:id", h.expense.DeleteExpense)

	summaries := api.Group("/summaries", h.requireJWT)
	summaries.GET("/monthly", h.summary.Monthly)
	summaries.GET("/categories", h.summary.ByCategory)
}

func metricsHandler(gatherer prometheus.Gatherer) echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

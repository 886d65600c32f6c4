package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userdeck/admin-console/internal/api/handler"
	"github.com/userdeck/admin-console/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The mongo database and redis client may be nil when those dependencies are
// disabled or unreachable; only the health probe consumes them directly.
func NewRouter(
	dashboard ports.DashboardService,
	notifier ports.Notifier,
	audit ports.AuditRecorder,
	db *mongo.Database,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Handlers ---
	userHandler := handler.NewUserHandler(dashboard)
	formHandler := handler.NewFormHandler(dashboard)
	notificationHandler := handler.NewNotificationHandler(notifier)
	auditHandler := handler.NewAuditHandler(audit)

	// --- Dashboard routes ---
	v1 := e.Group("/v1")
	v1.GET("/users", userHandler.List)
	v1.DELETE("/users/:id", userHandler.Delete)

	v1.POST("/form", formHandler.Open)
	v1.PUT("/form", formHandler.Patch)
	v1.POST("/form/image", formHandler.UploadImage)
	v1.POST("/form/submit", formHandler.Submit)
	v1.DELETE("/form", formHandler.Cancel)

	v1.GET("/notifications", notificationHandler.List)
	v1.GET("/audit", auditHandler.List)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

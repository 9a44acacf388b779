package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/jwt-auth-api/backend/docs"
	"github.com/jwt-auth-api/backend/internal/api/handler"
	"github.com/jwt-auth-api/backend/internal/api/middleware"
	"github.com/jwt-auth-api/backend/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers. Mongo and Redis
// are only used by the readiness probe and may be nil.
type Deps struct {
	Auth   ports.AuthService
	Admin  ports.UserAdminService
	Tokens ports.TokenVerifier
	Logger zerolog.Logger
	Mongo  *mongo.Database
	Redis  *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(middleware.Metrics())

	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Admin)

	e.GET("/", handler.Index)

	// --- Auth routes ---
	api := e.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// --- Admin routes (role check in the service) ---
	users := api.Group("/users", middleware.Auth(d.Tokens))
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.GetByID)
	users.DELETE("/:id", userHandler.DeleteByID)
	users.GET("/email/:email", userHandler.GetByEmail)
	users.DELETE("/email/:email", userHandler.DeleteByEmail)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis, d.Logger)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

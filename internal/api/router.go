package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ignitecapital/funding-platform/internal/api/handler"
	"github.com/ignitecapital/funding-platform/internal/api/middleware"
	"github.com/ignitecapital/funding-platform/internal/core/domain"
	"github.com/ignitecapital/funding-platform/internal/core/ports"
	"github.com/ignitecapital/funding-platform/internal/core/service"
	"github.com/ignitecapital/funding-platform/internal/infrastructure/config"
	mongodb "github.com/ignitecapital/funding-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/ignitecapital/funding-platform/internal/infrastructure/db/redis"
)

const requestTimeout = 10 * time.Second

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, docs ports.DocumentStore, audit service.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.TimeoutWithConfig(echomiddleware.TimeoutConfig{Timeout: requestTimeout}))
	e.Use(echoprometheus.NewMiddleware("funding"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	appRepo := mongodb.NewApplicationRepository(db)
	contactRepo := mongodb.NewContactRepository(db)
	revoker := redisdb.NewRevocationList(rdb)

	tokenTTL := time.Duration(cfg.TokenTTLHrs) * time.Hour
	authService := service.NewAuthService(userRepo, revoker, cfg.JWTSecret, tokenTTL, log)
	appService := service.NewApplicationService(appRepo, docs, audit, log)
	userService := service.NewUserService(userRepo, appRepo, docs, log)
	contactService := service.NewContactService(contactRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	appHandler := handler.NewApplicationHandler(appService)
	userHandler := handler.NewUserHandler(userService)
	contactHandler := handler.NewContactHandler(contactService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authMW := middleware.Auth(cfg.JWTSecret, revoker)
	adminMW := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authMW)
	auth.GET("/me", authHandler.Me, authMW)
	auth.PUT("/profile", authHandler.UpdateProfile, authMW)
	auth.PUT("/change-password", authHandler.ChangePassword, authMW)

	// --- Application routes ---
	apps := e.Group("/applications", authMW)
	apps.POST("", appHandler.Create)
	apps.GET("/my-applications", appHandler.ListMine)
	apps.GET("/admin/all", appHandler.ListAll, adminMW)
	apps.GET("/:id", appHandler.Get)
	apps.PUT("/:id", appHandler.Update)
	apps.POST("/:id/submit", appHandler.Submit)
	apps.POST("/:id/upload", appHandler.Upload)
	apps.PATCH("/:id/status", appHandler.SetStatus, adminMW)
	apps.DELETE("/:id", appHandler.Delete, adminMW)

	// --- User admin routes ---
	users := e.Group("/users", authMW, adminMW)
	users.GET("", userHandler.List)
	users.GET("/stats/overview", userHandler.Stats)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id/role", userHandler.SetRole)
	users.PATCH("/:id/status", userHandler.SetActive)
	users.DELETE("/:id", userHandler.Delete)

	// --- Contact routes ---
	e.POST("/contact", contactHandler.Submit)
	contact := e.Group("/contact", authMW, adminMW)
	contact.GET("", contactHandler.List)
	contact.GET("/:id", contactHandler.Get)
	contact.PATCH("/:id/respond", contactHandler.SetResponded)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	return e
}

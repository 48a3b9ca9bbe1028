package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ibs-platform/user-directory/docs"
	"github.com/ibs-platform/user-directory/internal/api/handler"
	"github.com/ibs-platform/user-directory/internal/api/middleware"
	"github.com/ibs-platform/user-directory/internal/core/domain"
	"github.com/ibs-platform/user-directory/internal/core/ports"
	"github.com/ibs-platform/user-directory/internal/core/service"
	"github.com/ibs-platform/user-directory/internal/infrastructure/config"
	mongodb "github.com/ibs-platform/user-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/ibs-platform/user-directory/internal/infrastructure/db/redis"
	"github.com/ibs-platform/user-directory/internal/infrastructure/scheduler"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is constructed by the caller so its worker lifecycle can be
// tied to the process context.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("userdir"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	schedulerClient := scheduler.NewClient(cfg.SchedulerURL, nil)
	throttle := redisdb.NewLoginThrottle(rdb)

	signer := service.NewTokenSigner(cfg.JWTSecret, cfg.TokenTTL)
	resolver := service.NewPrincipalResolver(userRepo, log)
	authService := service.NewAuthService(resolver, signer, throttle, log)
	userService := service.NewUserService(userRepo, roleRepo, audit, log)
	panelService := service.NewPanelService(userRepo, schedulerClient, log)
	reportService := service.NewReportService(userRepo, log)
	roleService := service.NewRoleService(roleRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	panelHandler := handler.NewPanelHandler(panelService)
	reportHandler := handler.NewReportHandler(reportService)
	roleHandler := handler.NewRoleHandler(roleService)

	authMW := middleware.Auth(cfg.JWTSecret)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleHR, domain.RolePanel)
	adminHROnly := middleware.RBAC(domain.RoleAdmin, domain.RoleHR)

	// --- Auth routes ---
	e.POST("/api/v1/auth/login", authHandler.Login)

	// --- User routes ---
	users := e.Group("/api/v1/users", authMW)
	users.POST("", userHandler.Create, staffOnly)
	users.GET("", userHandler.List, staffOnly)
	users.GET("/report", reportHandler.Report, staffOnly)
	users.GET("/panel/available", panelHandler.Available, staffOnly)
	users.GET("/panel/pending", panelHandler.Pending, staffOnly)
	users.GET("/role/:role", userHandler.ByRole, staffOnly)
	users.GET("/:id", userHandler.Get, staffOnly)
	users.PUT("/:id", userHandler.Update, staffOnly)
	users.DELETE("/:id", userHandler.Delete, adminHROnly)

	// --- Role routes ---
	e.GET("/api/v1/roles", roleHandler.List, authMW, staffOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

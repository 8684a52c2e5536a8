package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/retroportal/games-api/docs"
	"github.com/retroportal/games-api/internal/api/handler"
	"github.com/retroportal/games-api/internal/api/middleware"
	"github.com/retroportal/games-api/internal/core/domain"
	"github.com/retroportal/games-api/internal/core/service"
	"github.com/retroportal/games-api/internal/infrastructure/config"
	mongodb "github.com/retroportal/games-api/internal/infrastructure/db/mongo"
	redisdb "github.com/retroportal/games-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("retroportal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	gameRepo := mongodb.NewGameRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	gameService := service.NewGameService(gameRepo, log)
	adminService := service.NewAdminService(userRepo, gameRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(gameService)
	adminHandler := handler.NewAdminHandler(adminService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	auth := middleware.Auth(cfg.JWTSecret, userRepo)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret, userRepo)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)
	requireOwner := middleware.RequireRole(domain.RoleOwner)

	limiter := redisdb.NewFixedWindowLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)

	// Rate limiting guards the API surface only; probes, metrics and docs
	// stay reachable when a client burns through its budget.
	apiGroup := e.Group("/api", middleware.RateLimit(limiter, log))

	// --- Auth routes ---
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.GET("/auth/owner-exists", authHandler.OwnerExists)
	apiGroup.GET("/auth/me", authHandler.Me, auth)

	// --- Game catalog (public reads, admin writes) ---
	apiGroup.GET("/games", gameHandler.List, optionalAuth)
	apiGroup.GET("/games/filters/options", gameHandler.FilterOptions, optionalAuth)
	apiGroup.GET("/games/:id", gameHandler.Get, optionalAuth)
	apiGroup.POST("/games", gameHandler.Create, auth, requireAdmin)
	apiGroup.PUT("/games/:id", gameHandler.Update, auth, requireAdmin)
	apiGroup.DELETE("/games/:id", gameHandler.Delete, auth, requireAdmin)

	// --- Admin management (owner only) ---
	apiGroup.GET("/admin/users", adminHandler.List, auth, requireOwner)
	apiGroup.POST("/admin/users", adminHandler.Create, auth, requireOwner)
	apiGroup.DELETE("/admin/users/:id", adminHandler.Delete, auth, requireOwner)
	apiGroup.GET("/admin/stats", adminHandler.Stats, auth, requireOwner)

	// --- Health probes (outside the rate limited group) ---
	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e
}

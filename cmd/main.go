package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	configs "github.com/timz-app/timz-api/config"
	"github.com/timz-app/timz-api/internal/handler"
	"github.com/timz-app/timz-api/internal/middleware"
	"github.com/timz-app/timz-api/internal/repository"
	"github.com/timz-app/timz-api/internal/router"
	"github.com/timz-app/timz-api/internal/service"
	"github.com/timz-app/timz-api/pkg/database"
	"github.com/timz-app/timz-api/pkg/logger"
	"github.com/timz-app/timz-api/pkg/redis"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config.App.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	db, err := database.NewPostgresDB(database.Config{
		DSN:          config.DatabaseConnectionString(),
		MaxIdleConns: config.Database.MaxIdleConns,
		MaxOpenConns: config.Database.MaxOpenConns,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Services
	hasher := service.NewPasswordHasher()
	tokenService := service.NewTokenService(config.JWT)
	guard := service.NewGuard(tokenService, userRepo)
	authService := service.NewAuthService(userRepo, hasher, tokenService)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(catalogRepo)

	// Rate limiting backend: Redis when enabled, in-process otherwise
	var limiter middleware.Limiter = middleware.NewMemoryLimiter()
	if config.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Addr:     config.RedisAddress(),
			Password: config.Redis.Password,
			DB:       config.Redis.Database,
		})
		if err != nil {
			logger.GetLogger().Warn("Redis unavailable, using in-process rate limiter", zap.Error(err))
		} else {
			defer redisClient.Close()
			limiter = redisClient
			logger.GetLogger().Info("Redis rate limiter initialized", zap.String("address", config.RedisAddress()))
		}
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	healthHandler := handler.NewHealthHandler(db)

	authMw := middleware.NewAuthMiddleware(guard)

	engine := router.NewRouter(
		authHandler,
		userHandler,
		catalogHandler,
		healthHandler,
		authMw,
		limiter,
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:    ":" + config.App.Port,
		Handler: engine,
	}

	go func() {
		logger.GetLogger().Info("Server starting", zap.String("port", config.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Forced shutdown", zap.Error(err))
	}
}

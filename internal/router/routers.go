package router

import (
	"github.com/gin-gonic/gin"

	"github.com/timz-app/timz-api/config"
	"github.com/timz-app/timz-api/internal/handler"
	"github.com/timz-app/timz-api/internal/middleware"
)

type Router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	catalogHandler *handler.CatalogHandler
	healthHandler  *handler.HealthHandler

	authMw  *middleware.AuthMiddleware
	limiter middleware.Limiter
	config  *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	catalog *handler.CatalogHandler,
	health *handler.HealthHandler,
	authMw *middleware.AuthMiddleware,
	limiter middleware.Limiter,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:    auth,
		userHandler:    user,
		catalogHandler: catalog,
		healthHandler:  health,
		authMw:         authMw,
		limiter:        limiter,
		config:         cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.Health)

		v1 := api.Group("/v1")
		{
			r.authRoutes(v1)
			r.userRoutes(v1)
			r.catalogRoutes(v1)
		}
	}

	return router
}

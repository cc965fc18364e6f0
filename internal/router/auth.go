package router

import (
	"github.com/gin-gonic/gin"

	"github.com/timz-app/timz-api/internal/middleware"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes, rate limited to slow down credential stuffing
		limited := auth.Group("")
		limited.Use(middleware.RateLimit(r.limiter, r.config.RateLimit.Request, r.config.RateLimit.Duration))
		{
			limited.POST("/signup", r.authHandler.Signup)
			limited.POST("/login", r.authHandler.Login)
		}

		// Protected routes
		protected := auth.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.POST("/logout", r.authHandler.Logout)
			protected.GET("/me", r.authHandler.Me)
		}
	}
}

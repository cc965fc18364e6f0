package router

import (
	"github.com/gin-gonic/gin"

	"github.com/timz-app/timz-api/internal/model"
)

func (r *Router) catalogRoutes(version *gin.RouterGroup) {
	services := version.Group("/services")
	{
		// Open marketplace surface
		services.GET("/public", r.catalogHandler.ListPublicServices)
		services.GET("/categories", r.catalogHandler.ListCategories)

		// Pro-only management
		pro := services.Group("")
		pro.Use(r.authMw.RequireRoles(model.RolePro))
		{
			pro.POST("", r.catalogHandler.CreateService)
			pro.GET("/mine", r.catalogHandler.ListMyServices)
			pro.GET("/:id", r.catalogHandler.GetService)
			pro.PATCH("/:id", r.catalogHandler.UpdateService)
			pro.DELETE("/:id", r.catalogHandler.DeleteService)
			pro.POST("/groups", r.catalogHandler.CreateServiceGroup)
			pro.GET("/groups", r.catalogHandler.ListMyServiceGroups)
		}

		// Admin-curated categories
		services.POST("/categories", r.authMw.RequireRoles(model.RoleAdmin), r.catalogHandler.CreateCategory)
	}
}

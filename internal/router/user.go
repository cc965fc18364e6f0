package router

import (
	"github.com/gin-gonic/gin"

	"github.com/timz-app/timz-api/internal/model"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	{
		users.GET("", r.authMw.RequireRoles(model.RoleAdmin), r.userHandler.List)

		authed := users.Group("")
		authed.Use(r.authMw.RequireAuth())
		{
			authed.GET("/:id", r.userHandler.GetByID)
			authed.PATCH("/:id", r.userHandler.Update)
			authed.DELETE("/:id", r.userHandler.Delete)

			// Role provisioning; self-or-admin is enforced in the service
			authed.POST("/:id/roles", r.userHandler.AddRole)
			authed.DELETE("/:id/roles/:role", r.userHandler.RemoveRole)

			// Role-specific profile rows
			authed.GET("/:id/client", r.userHandler.GetClientProfile)
			authed.PATCH("/:id/client", r.userHandler.UpdateClientProfile)
			authed.GET("/:id/pro", r.userHandler.GetProProfile)
			authed.PATCH("/:id/pro", r.userHandler.UpdateProProfile)
		}
	}
}

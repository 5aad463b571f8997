package routes

import (
	"github.com/gin-gonic/gin"

	"sheharfix-be/controllers"
	"sheharfix-be/middlewares"
	"sheharfix-be/models"
)

// NGORoutes sets up the NGO directory routes. Reads are public, writes are
// admin only.
func NGORoutes(r *gin.Engine, nc *controllers.NGOController) {
	admin := middlewares.RequireRole(models.RoleAdmin)

	ngos := r.Group("/api/ngos")
	{
		ngos.GET("", nc.ListNGOs)
		ngos.POST("", middlewares.RequireAuth(), admin, nc.CreateNGO)
		ngos.GET("/:id", nc.GetNGO)
		ngos.PUT("/:id", middlewares.RequireAuth(), admin, nc.UpdateNGO)
		ngos.PATCH("/:id", middlewares.RequireAuth(), admin, nc.UpdateNGO)
		ngos.DELETE("/:id", middlewares.RequireAuth(), admin, nc.DeleteNGO)
	}
}

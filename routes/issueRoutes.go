package routes

import (
	"github.com/gin-gonic/gin"

	"sheharfix-be/controllers"
	"sheharfix-be/middlewares"
	"sheharfix-be/models"
)

// IssueRoutes sets up the issue routes. Creation and resolution use optional
// auth so anonymous reports stay possible; mutations require a token.
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController, nc *controllers.NGOController, rateLimiter gin.HandlerFunc) {
	admin := middlewares.RequireRole(models.RoleAdmin)

	issues := r.Group("/api/issues")
	{
		issues.GET("", ic.ListIssues)
		issues.GET("/heatmap", ic.Heatmap)
		issues.POST("", middlewares.OptionalAuth(), rateLimiter, ic.CreateIssue)
		issues.GET("/:id", ic.GetIssue)
		issues.PUT("/:id", middlewares.RequireAuth(), ic.UpdateIssue)
		issues.PATCH("/:id/resolve", middlewares.OptionalAuth(), ic.ResolveIssue)
		issues.DELETE("/:id", middlewares.RequireAuth(), ic.DeleteIssue)

		issues.GET("/:id/ngos", nc.ListIssueNgos)
		issues.POST("/:id/ngos", middlewares.RequireAuth(), admin, nc.AssignNgo)
		issues.DELETE("/:id/ngos/:ngoId", middlewares.RequireAuth(), admin, nc.UnassignNgo)
	}
}

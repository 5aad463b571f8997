package routes

import (
	"github.com/gin-gonic/gin"

	"sheharfix-be/controllers"
)

// AnalyticsRoutes sets up the public read views over the stored issues.
func AnalyticsRoutes(r *gin.Engine, anc *controllers.AnalyticsController) {
	r.GET("/api/analytics", anc.GetAnalytics)
	r.GET("/api/leaderboard", anc.GetLeaderboard)
}

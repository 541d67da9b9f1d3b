package api

import (
	"github.com/gin-gonic/gin"

	"github.com/NikitHamal/flashy-astro-go/internal/api/handlers"
	"github.com/NikitHamal/flashy-astro-go/internal/middleware"
)

// SetupRoutes registers every endpoint on the router.
func SetupRoutes(router *gin.Engine, chart *handlers.ChartHandler, health *handlers.HealthHandler, admin *handlers.AdminHandler, auth *middleware.AuthMiddleware) {
	router.GET("/health", health.HealthCheck)
	router.GET("/health/system", health.SystemHealth)

	v1 := router.Group("/api/v1")
	{
		charts := v1.Group("/chart")
		{
			charts.POST("/ashtakavarga", chart.Analyze)
			charts.POST("/transit", chart.EvaluateTransit)
			charts.POST("/kakshya", chart.Kakshya)
		}

		v1.GET("/charts", chart.ListCharts)
		v1.GET("/charts/:id", chart.GetChart)

		adminGroup := v1.Group("/admin")
		adminGroup.Use(auth.RequireAdmin())
		{
			adminGroup.GET("/cache/stats", admin.GetCacheStats)
			adminGroup.DELETE("/cache", admin.ClearCache)
		}
	}
}

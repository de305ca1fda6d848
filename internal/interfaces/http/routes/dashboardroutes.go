package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/handlers"
)

type DashboardRouteConfig struct {
	ActivityHandler *handlers.ActivityHandler
	StatsHandler    *handlers.StatsHandler
}

func SetupDashboardRoutes(api *gin.RouterGroup, config *DashboardRouteConfig) {
	api.GET("/activities", config.ActivityHandler.ListActivities)
	api.GET("/stats", config.StatsHandler.GetStats)
}

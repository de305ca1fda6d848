package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/handlers"
)

type SettingRouteConfig struct {
	Handler  *handlers.SettingHandler
	Throttle gin.HandlerFunc
}

func SetupSettingRoutes(api *gin.RouterGroup, config *SettingRouteConfig) {
	settings := api.Group("/settings")
	{
		settings.GET("", config.Handler.GetSettings)
		settings.PUT("", config.Handler.UpdateSettings)
		// POST verifies a credential against Discord.
		settings.POST("", withThrottle(config.Throttle, config.Handler.VerifyCredential)...)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/handlers"
)

type NotificationRouteConfig struct {
	Handler *handlers.NotificationHandler
	// Throttle guards the routes that reach Discord; nil disables it.
	Throttle gin.HandlerFunc
}

func SetupNotificationRoutes(api *gin.RouterGroup, config *NotificationRouteConfig) {
	notifications := api.Group("/notifications")
	{
		notifications.GET("", config.Handler.ListNotifications)
		notifications.PUT("", withThrottle(config.Throttle, config.Handler.RunAction)...)
		notifications.POST("", withThrottle(config.Throttle, config.Handler.SendManual)...)
	}
}

func withThrottle(throttle gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	if throttle == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{throttle, h}
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nitrodesk/nitrodesk/docs"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/handlers"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/middleware"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/routes"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// Scopes for the Discord-facing rate limit buckets.
const (
	rateScopeDispatch = "dispatch"
	rateScopeVerify   = "verify"
)

// RouterDeps are the handlers and cross-cutting pieces the router mounts.
type RouterDeps struct {
	CustomerHandler     *handlers.CustomerHandler
	NotificationHandler *handlers.NotificationHandler
	ActivityHandler     *handlers.ActivityHandler
	SettingHandler      *handlers.SettingHandler
	StatsHandler        *handlers.StatsHandler
	HealthHandler       *handlers.HealthHandler

	// RateLimiter is optional.
	RateLimiter    *middleware.RateLimiter
	HTTPMetrics    middleware.RequestObserver
	MetricsHandler http.Handler
	AllowedOrigins []string
	EnableSwagger  bool
	Logger         logger.Interface
}

type Router struct {
	engine *gin.Engine
	deps   RouterDeps
}

func NewRouter(deps RouterDeps) *Router {
	return &Router{engine: gin.New(), deps: deps}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.deps.Logger))
	r.engine.Use(middleware.Logger(r.deps.Logger))
	r.engine.Use(middleware.CORS(r.deps.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	if r.deps.HTTPMetrics != nil {
		r.engine.Use(middleware.Metrics(r.deps.HTTPMetrics))
	}

	r.engine.GET("/health", r.deps.HealthHandler.Health)
	if r.deps.MetricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.deps.MetricsHandler))
	}
	if r.deps.EnableSwagger {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group("/api")
	api.Use(middleware.Actor())

	routes.SetupCustomerRoutes(api, &routes.CustomerRouteConfig{Handler: r.deps.CustomerHandler})
	routes.SetupNotificationRoutes(api, &routes.NotificationRouteConfig{
		Handler:  r.deps.NotificationHandler,
		Throttle: r.throttle(rateScopeDispatch),
	})
	routes.SetupSettingRoutes(api, &routes.SettingRouteConfig{
		Handler:  r.deps.SettingHandler,
		Throttle: r.throttle(rateScopeVerify),
	})
	routes.SetupDashboardRoutes(api, &routes.DashboardRouteConfig{
		ActivityHandler: r.deps.ActivityHandler,
		StatsHandler:    r.deps.StatsHandler,
	})

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "route not found", "code": "not_found"})
	})
}

func (r *Router) throttle(scope string) gin.HandlerFunc {
	if r.deps.RateLimiter == nil {
		return nil
	}
	return r.deps.RateLimiter.Limit(scope)
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

package http

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	customerApp "github.com/nitrodesk/nitrodesk/internal/application/customer"
	notificationApp "github.com/nitrodesk/nitrodesk/internal/application/notification"
	notificationUsecases "github.com/nitrodesk/nitrodesk/internal/application/notification/usecases"
	settingApp "github.com/nitrodesk/nitrodesk/internal/application/setting"
	statsApp "github.com/nitrodesk/nitrodesk/internal/application/stats"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/cache"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/config"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/credential"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/discord"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/email"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/metrics"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/ratelimit"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/repository"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/template"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/handlers"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/middleware"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/db"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/services/markdown"
)

// Container wires infrastructure, application services and the HTTP router.
// The server, notify and worker commands all build one; only the server mounts
// the router.
type Container struct {
	cfg      *config.Config
	db       *gorm.DB
	redis    *redis.Client
	log      logger.Interface
	registry *prometheus.Registry

	recorder        *activityApp.Recorder
	settingService  *settingApp.ServiceDDD
	customerService *customerApp.ServiceDDD
	notifService    *notificationApp.ServiceDDD
	statsService    *statsApp.ServiceDDD

	router *Router
}

// NewContainer builds everything from cfg. Redis is optional: without it the
// in-flight guard and rate limiter are process-local.
func NewContainer(ctx context.Context, cfg *config.Config, database *gorm.DB, log logger.Interface) (*Container, error) {
	c := &Container{
		cfg:      cfg,
		db:       database,
		log:      log,
		registry: metrics.NewRegistry(),
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		return nil, err
	}
	c.redis = redisClient

	if err := c.initServices(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initRouter()
	return c, nil
}

func (c *Container) initServices() error {
	clock := biztime.SystemClock()
	md := markdown.NewMarkdownService()

	customerRepo := repository.NewCustomerRepository(c.db, c.log)
	notifRepo := repository.NewNotificationRepository(c.db, c.log)
	activityRepo := repository.NewActivityLogRepository(c.db)
	settingRepo := repository.NewSystemSettingRepository(c.db, c.log)

	sealer, err := credential.NewSealer(c.cfg.Security.CredentialKey)
	if err != nil {
		return fmt.Errorf("invalid security.credential_key: %w", err)
	}
	if !sealer.Enabled() {
		c.log.Warnw("security.credential_key is empty; the bot token is stored in plaintext")
	}

	renderer, err := template.NewRenderer(c.cfg.Notification.TemplatesPath, md, c.log)
	if err != nil {
		return fmt.Errorf("failed to load message templates: %w", err)
	}

	discordClient := discord.NewClient(c.cfg.Discord, c.log)

	c.recorder = activityApp.NewRecorder(activityRepo, clock, metrics.NewActivityMetrics(c.registry), c.log)
	c.settingService = settingApp.NewServiceDDD(
		settingRepo, sealer, db.NewTransactionManager(c.db), c.recorder, discordClient, clock, c.log,
	)
	provider := c.settingService.Provider()

	var locks cache.InflightLock = cache.NewMemoryInflightLock()
	if c.redis != nil {
		locks = cache.NewRedisInflightLock(c.redis, c.log)
	}

	var reporter notificationUsecases.CycleReporter
	if c.cfg.Report.Enabled {
		smtp := email.NewSMTPEmailService(c.cfg.Report.Email)
		reporter = email.NewCycleReportMailer(smtp, md, c.cfg.Report.Recipients, biztime.Location())
	}

	c.notifService = notificationApp.NewServiceDDD(notificationApp.Dependencies{
		Settings:     provider,
		CustomerRepo: customerRepo,
		NotifRepo:    notifRepo,
		Deliverer:    discordClient,
		Renderer:     renderer,
		Locks:        locks,
		Recorder:     c.recorder,
		Reporter:     reporter,
		Metrics:      metrics.NewNotificationMetrics(c.registry),
		Clock:        clock,
		Dispatch: notificationUsecases.DispatchConfig{
			MaxConcurrency: c.cfg.Notification.MaxConcurrency,
			InflightTTL:    c.cfg.Notification.InflightTTL(),
		},
		NotifyOnExpiry: c.cfg.Notification.NotifyOnExpiry,
	}, c.log.Named("notification"))

	c.customerService = customerApp.NewServiceDDD(
		customerRepo, notifRepo, provider, c.recorder, c.notifService, clock, c.log,
	)
	c.statsService = statsApp.NewServiceDDD(
		customerRepo, c.notifService.Selector(), notifRepo, provider, clock, c.log,
	)
	return nil
}

func (c *Container) initRouter() {
	var limiter ratelimit.RateLimiter = ratelimit.NewMemoryRateLimiter()
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}
	rateLimiter := middleware.NewRateLimiter(limiter, ratelimit.RateLimitConfig{
		RequestsPerMinute: c.cfg.RateLimit.DispatchPerMinute,
		RequestsPerHour:   c.cfg.RateLimit.DispatchPerHour,
	}, c.log)

	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}

	c.router = NewRouter(RouterDeps{
		CustomerHandler:     handlers.NewCustomerHandler(c.customerService, c.log),
		NotificationHandler: handlers.NewNotificationHandler(c.notifService, c.log),
		ActivityHandler:     handlers.NewActivityHandler(c.recorder),
		SettingHandler:      handlers.NewSettingHandler(c.settingService, c.log),
		StatsHandler:        handlers.NewStatsHandler(c.statsService),
		HealthHandler:       handlers.NewHealthHandler(checks, c.log),
		RateLimiter:         rateLimiter,
		HTTPMetrics:         metrics.NewHTTPMetrics(c.registry),
		MetricsHandler:      promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry}),
		AllowedOrigins:      c.cfg.Server.AllowedOrigins,
		EnableSwagger:       c.cfg.Server.Mode != "release",
		Logger:              c.log,
	})
	c.router.SetupRoutes()
}

func (c *Container) Router() *Router {
	return c.router
}

func (c *Container) NotificationService() *notificationApp.ServiceDDD {
	return c.notifService
}

// Shutdown releases the redis connection. The database is owned by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}

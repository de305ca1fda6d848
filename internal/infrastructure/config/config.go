package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/nitrodesk/nitrodesk/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Discord      sharedConfig.DiscordConfig      `mapstructure:"discord"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	Security     sharedConfig.SecurityConfig     `mapstructure:"security"`
	Report       sharedConfig.ReportConfig       `mapstructure:"report"`
	RateLimit    sharedConfig.RateLimitConfig    `mapstructure:"ratelimit"`
	BizTime      sharedConfig.BizTimeConfig      `mapstructure:"biztime"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads .env (when present), configs/config.yaml and NITRODESK_* environment
// variables, in increasing order of precedence.
func Load(env string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("NITRODESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the last loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "nitrodesk")
	v.SetDefault("database.path", "nitrodesk.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.migration_strategy", "goose")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("discord.api_base_url", "https://discord.com/api/v10")
	v.SetDefault("discord.request_timeout_seconds", 10)

	v.SetDefault("notification.max_concurrency", 4)
	v.SetDefault("notification.inflight_ttl_seconds", 120)
	v.SetDefault("notification.templates_path", "")
	v.SetDefault("notification.worker_interval_minutes", 60)
	v.SetDefault("notification.worker_mark_expired", true)
	v.SetDefault("notification.notify_on_expiry", false)

	v.SetDefault("security.credential_key", "")

	v.SetDefault("report.enabled", false)
	v.SetDefault("report.email.smtp_host", "localhost")
	v.SetDefault("report.email.smtp_port", 1025)
	v.SetDefault("report.email.from_address", "noreply@nitrodesk.local")
	v.SetDefault("report.email.from_name", "Nitrodesk")

	v.SetDefault("ratelimit.dispatch_per_minute", 6)
	v.SetDefault("ratelimit.dispatch_per_hour", 60)

	v.SetDefault("biztime.timezone", "UTC")
}

package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of the HTTP server.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) ShutdownTimeout() time.Duration {
	if s.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig selects the customer store. Driver is "mysql" or "sqlite";
// Path is only read for sqlite.
type DatabaseConfig struct {
	Driver            string `mapstructure:"driver"`
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Username          string `mapstructure:"username"`
	Password          string `mapstructure:"password"`
	Database          string `mapstructure:"database"`
	Path              string `mapstructure:"path"`
	MaxIdleConns      int    `mapstructure:"max_idle_conns"`
	MaxOpenConns      int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime   int    `mapstructure:"conn_max_lifetime"`
	MigrationStrategy string `mapstructure:"migration_strategy"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type DiscordConfig struct {
	APIBaseURL            string `mapstructure:"api_base_url"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
}

func (d *DiscordConfig) RequestTimeout() time.Duration {
	if d.RequestTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(d.RequestTimeoutSeconds) * time.Second
}

type NotificationConfig struct {
	MaxConcurrency     int    `mapstructure:"max_concurrency"`
	InflightTTLSeconds int    `mapstructure:"inflight_ttl_seconds"`
	TemplatesPath      string `mapstructure:"templates_path"`
	// WorkerIntervalMinutes drives the optional worker command.
	WorkerIntervalMinutes int  `mapstructure:"worker_interval_minutes"`
	WorkerMarkExpired     bool `mapstructure:"worker_mark_expired"`
	// NotifyOnExpiry sends an EXPIRED message to customers the expiry pass transitions.
	NotifyOnExpiry bool `mapstructure:"notify_on_expiry"`
}

func (n *NotificationConfig) InflightTTL() time.Duration {
	if n.InflightTTLSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(n.InflightTTLSeconds) * time.Second
}

func (n *NotificationConfig) WorkerInterval() time.Duration {
	if n.WorkerIntervalMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(n.WorkerIntervalMinutes) * time.Minute
}

type SecurityConfig struct {
	// CredentialKey is a 32-byte key (hex or base64) used to seal the bot
	// token at rest. Empty keeps the token in plaintext.
	CredentialKey string `mapstructure:"credential_key"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

type ReportConfig struct {
	Enabled    bool        `mapstructure:"enabled"`
	Recipients []string    `mapstructure:"recipients"`
	Email      EmailConfig `mapstructure:"email"`
}

type BizTimeConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// RateLimitConfig throttles the endpoints that talk to Discord. Zero disables a window.
type RateLimitConfig struct {
	DispatchPerMinute int `mapstructure:"dispatch_per_minute"`
	DispatchPerHour   int `mapstructure:"dispatch_per_hour"`
}

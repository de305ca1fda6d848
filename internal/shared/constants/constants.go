package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Activity and notification history limits.
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500

	HeaderXRequestID = "X-Request-ID"
	// HeaderXActorID names the admin performing a mutation; recorded on activity entries.
	HeaderXActorID = "X-Actor-ID"

	ContextKeyActorID = "actor_id"

	TableCustomers      = "customers"
	TableNotifications  = "notification_records"
	TableActivityLogs   = "activity_logs"
	TableSystemSettings = "system_settings"
)

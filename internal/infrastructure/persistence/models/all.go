package models

// All lists every model for AutoMigrate, in dependency order.
func All() []any {
	return []any{
		&CustomerModel{},
		&NotificationRecordModel{},
		&ActivityLogModel{},
		&SystemSettingModel{},
	}
}

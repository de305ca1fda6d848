package models

import (
	"time"

	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
)

// NotificationRecordModel has no foreign key to customers; history survives deletes.
type NotificationRecordModel struct {
	ID              string     `gorm:"column:id;type:varchar(32);primaryKey"`
	CustomerID      string     `gorm:"column:customer_id;type:varchar(32);not null;index:idx_notif_customer_type_sent,priority:1"`
	DiscordID       string     `gorm:"column:discord_id;type:varchar(32)"`
	DiscordUsername string     `gorm:"column:discord_username;type:varchar(100)"`
	Type            string     `gorm:"column:type;type:varchar(20);not null;index:idx_notif_customer_type_sent,priority:2"`
	Message         string     `gorm:"column:message;type:text"`
	SentAt          time.Time  `gorm:"column:sent_at;not null;index;index:idx_notif_customer_type_sent,priority:3"`
	Success         bool       `gorm:"column:success;not null"`
	Error           string     `gorm:"column:error;type:text"`
	CycleID         string     `gorm:"column:cycle_id;type:varchar(36);index"`
	WindowStart     *time.Time `gorm:"column:window_start"`
}

func (NotificationRecordModel) TableName() string {
	return constants.TableNotifications
}

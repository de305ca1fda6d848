package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
)

type ActivityLogModel struct {
	ID          string            `gorm:"column:id;type:varchar(32);primaryKey"`
	Action      string            `gorm:"column:action;type:varchar(20);not null;index"`
	EntityType  string            `gorm:"column:entity_type;type:varchar(20);not null;index:idx_activity_entity,priority:1"`
	EntityID    string            `gorm:"column:entity_id;type:varchar(32);index:idx_activity_entity,priority:2"`
	Description string            `gorm:"column:description;type:text;not null"`
	ActorID     string            `gorm:"column:actor_id;type:varchar(64)"`
	Metadata    datatypes.JSONMap `gorm:"column:metadata"`
	CreatedAt   time.Time         `gorm:"column:created_at;not null;index"`
}

func (ActivityLogModel) TableName() string {
	return constants.TableActivityLogs
}

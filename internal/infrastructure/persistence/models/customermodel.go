package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
)

// CustomerModel is the GORM model for customers. Derived fields are never stored.
type CustomerModel struct {
	ID              string              `gorm:"column:id;type:varchar(32);primaryKey"`
	DiscordID       string              `gorm:"column:discord_id;type:varchar(32);not null;uniqueIndex"`
	DiscordUsername string              `gorm:"column:discord_username;type:varchar(100);index"`
	DiscordAvatar   string              `gorm:"column:discord_avatar;type:varchar(255)"`
	NitroType       string              `gorm:"column:nitro_type;type:varchar(20);not null"`
	StartDate       time.Time           `gorm:"column:start_date;not null;index:idx_customers_status_start,priority:2"`
	DurationMonths  int                 `gorm:"column:duration_months;not null"`
	Price           decimal.NullDecimal `gorm:"column:price;type:decimal(10,2)"`
	Notes           string              `gorm:"column:notes;type:text"`
	Status          string              `gorm:"column:status;type:varchar(20);not null;default:'ACTIVE';index:idx_customers_status_start,priority:1"`
	CreatedAt       time.Time           `gorm:"column:created_at;index"`
	UpdatedAt       time.Time           `gorm:"column:updated_at"`
}

func (CustomerModel) TableName() string {
	return constants.TableCustomers
}

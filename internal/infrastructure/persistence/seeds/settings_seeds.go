package seeds

import (
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/models"
)

// SeedDiscordSettings inserts the default discord-category rows. Existing rows
// are never overwritten, so running it after every migration is safe.
func SeedDiscordSettings(db *gorm.DB, now time.Time) (int64, error) {
	defaults := map[string]string{
		setting.KeyNotifyBeforeDays:  strconv.Itoa(setting.DefaultNotifyBeforeDays),
		setting.KeyNotifyBeforeHours: strconv.Itoa(setting.DefaultNotifyBeforeHours),
		setting.KeyBotActive:         "false",
	}

	rows := make([]models.SystemSettingModel, 0, len(defaults))
	for key, value := range defaults {
		vt, _ := setting.BotValueType(key)
		rows = append(rows, models.SystemSettingModel{
			Category:   setting.CategoryDiscord,
			SettingKey: key,
			Value:      value,
			ValueType:  string(vt),
			UpdatedBy:  "system",
			Version:    1,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	return result.RowsAffected, result.Error
}

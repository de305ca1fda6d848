package setting

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

const CategoryDiscord = "discord"

const (
	KeyBotToken              = "bot_token"
	KeyClientID              = "client_id"
	KeyGuildID               = "guild_id"
	KeyNotificationChannelID = "notification_channel_id"
	KeyNitroRoleID           = "nitro_role_id"
	KeyAdminRoleID           = "admin_role_id"
	KeyNotifyBeforeDays      = "notify_before_days"
	KeyNotifyBeforeHours     = "notify_before_hours"
	KeyBotActive             = "is_bot_active"
)

const (
	DefaultNotifyBeforeDays  = 7
	DefaultNotifyBeforeHours = 24

	MaxNotifyBeforeDays  = 365
	MaxNotifyBeforeHours = 720
)

var botValueTypes = map[string]ValueType{
	KeyBotToken:              ValueTypeSecret,
	KeyClientID:              ValueTypeString,
	KeyGuildID:               ValueTypeString,
	KeyNotificationChannelID: ValueTypeString,
	KeyNitroRoleID:           ValueTypeString,
	KeyAdminRoleID:           ValueTypeString,
	KeyNotifyBeforeDays:      ValueTypeInt,
	KeyNotifyBeforeHours:     ValueTypeInt,
	KeyBotActive:             ValueTypeBool,
}

// BotValueType returns the storage type of a discord-category key.
func BotValueType(key string) (ValueType, bool) {
	vt, ok := botValueTypes[key]
	return vt, ok
}

// BotSettings is the singleton Discord configuration threaded through the
// selector and the dispatcher. BotToken holds whatever is stored (it may be
// sealed); callers that need the plaintext unseal it first.
type BotSettings struct {
	BotToken              string
	ClientID              string
	GuildID               string
	NotificationChannelID string
	NitroRoleID           string
	AdminRoleID           string
	NotifyBeforeDays      int
	NotifyBeforeHours     int
	IsBotActive           bool
	UpdatedAt             time.Time
}

func DefaultBotSettings() BotSettings {
	return BotSettings{
		NotifyBeforeDays:  DefaultNotifyBeforeDays,
		NotifyBeforeHours: DefaultNotifyBeforeHours,
	}
}

func (b BotSettings) HasBotToken() bool {
	return b.BotToken != ""
}

// LoadBotSettings folds the discord rows over the defaults. Unknown keys are ignored.
func LoadBotSettings(rows []*SystemSetting) (BotSettings, error) {
	b := DefaultBotSettings()
	for _, row := range rows {
		var err error
		switch row.Key() {
		case KeyBotToken:
			b.BotToken = row.Value()
		case KeyClientID:
			b.ClientID = row.Value()
		case KeyGuildID:
			b.GuildID = row.Value()
		case KeyNotificationChannelID:
			b.NotificationChannelID = row.Value()
		case KeyNitroRoleID:
			b.NitroRoleID = row.Value()
		case KeyAdminRoleID:
			b.AdminRoleID = row.Value()
		case KeyNotifyBeforeDays:
			if row.Value() != "" {
				b.NotifyBeforeDays, err = row.IntValue()
			}
		case KeyNotifyBeforeHours:
			if row.Value() != "" {
				b.NotifyBeforeHours, err = row.IntValue()
			}
		case KeyBotActive:
			b.IsBotActive, err = row.BoolValue()
		}
		if err != nil {
			return BotSettings{}, fmt.Errorf("%w: %s=%q", ErrInvalidValueType, row.Key(), row.Value())
		}
		if row.UpdatedAt().After(b.UpdatedAt) {
			b.UpdatedAt = row.UpdatedAt()
		}
	}
	return b, nil
}

// BotSettingsPatch is a partial update. A nil field is left untouched, and so is
// an empty BotToken; ClearBotToken is the only way to erase the credential.
type BotSettingsPatch struct {
	BotToken              *string
	ClearBotToken         bool
	ClientID              *string
	GuildID               *string
	NotificationChannelID *string
	NitroRoleID           *string
	AdminRoleID           *string
	NotifyBeforeDays      *int
	NotifyBeforeHours     *int
	IsBotActive           *bool
}

// TokenProvided reports whether the patch carries a new non-empty credential.
// A masked display value counts as absent.
func (p BotSettingsPatch) TokenProvided() bool {
	if p.BotToken == nil {
		return false
	}
	tok := strings.TrimSpace(*p.BotToken)
	return tok != "" && !utils.IsMasked(tok)
}

// Changes validates p and returns the encoded value of every key it sets.
// The token entry holds the plaintext; sealing is the caller's job.
func (p BotSettingsPatch) Changes() (map[string]string, error) {
	if p.NotifyBeforeDays != nil && (*p.NotifyBeforeDays < 1 || *p.NotifyBeforeDays > MaxNotifyBeforeDays) {
		return nil, fmt.Errorf("%w: notifyBeforeDays must be between 1 and %d", ErrThresholdRange, MaxNotifyBeforeDays)
	}
	if p.NotifyBeforeHours != nil && (*p.NotifyBeforeHours < 1 || *p.NotifyBeforeHours > MaxNotifyBeforeHours) {
		return nil, fmt.Errorf("%w: notifyBeforeHours must be between 1 and %d", ErrThresholdRange, MaxNotifyBeforeHours)
	}

	changes := make(map[string]string)
	switch {
	case p.ClearBotToken:
		changes[KeyBotToken] = ""
	case p.TokenProvided():
		changes[KeyBotToken] = strings.TrimSpace(*p.BotToken)
	}

	setString := func(key string, v *string) {
		if v != nil {
			changes[key] = strings.TrimSpace(*v)
		}
	}
	setString(KeyClientID, p.ClientID)
	setString(KeyGuildID, p.GuildID)
	setString(KeyNotificationChannelID, p.NotificationChannelID)
	setString(KeyNitroRoleID, p.NitroRoleID)
	setString(KeyAdminRoleID, p.AdminRoleID)

	if p.NotifyBeforeDays != nil {
		changes[KeyNotifyBeforeDays] = strconv.Itoa(*p.NotifyBeforeDays)
	}
	if p.NotifyBeforeHours != nil {
		changes[KeyNotifyBeforeHours] = strconv.Itoa(*p.NotifyBeforeHours)
	}
	if p.IsBotActive != nil {
		changes[KeyBotActive] = strconv.FormatBool(*p.IsBotActive)
	}
	return changes, nil
}

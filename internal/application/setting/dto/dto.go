package dto

import (
	"time"

	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

// SettingsResponse is the redacted view of the Discord settings.
type SettingsResponse struct {
	DiscordBotToken       string    `json:"discordBotToken"`
	HasBotToken           bool      `json:"hasBotToken"`
	DiscordClientID       string    `json:"discordClientId"`
	DiscordGuildID        string    `json:"discordGuildId"`
	NotificationChannelID string    `json:"notificationChannelId"`
	NitroRoleID           string    `json:"nitroRoleId"`
	AdminRoleID           string    `json:"adminRoleId"`
	NotifyBeforeDays      int       `json:"notifyBeforeDays"`
	NotifyBeforeHours     int       `json:"notifyBeforeHours"`
	IsBotActive           bool      `json:"isBotActive"`
	UpdatedAt             time.Time `json:"updatedAt,omitempty"`
}

// UpdateSettingsRequest is a partial update. Omitted fields are left alone and
// an empty discordBotToken keeps the stored one; use clearBotToken to erase it.
type UpdateSettingsRequest struct {
	DiscordBotToken       *string `json:"discordBotToken"`
	ClearBotToken         bool    `json:"clearBotToken"`
	DiscordClientID       *string `json:"discordClientId" binding:"omitempty,max=64"`
	DiscordGuildID        *string `json:"discordGuildId" binding:"omitempty,max=64"`
	NotificationChannelID *string `json:"notificationChannelId" binding:"omitempty,max=64"`
	NitroRoleID           *string `json:"nitroRoleId" binding:"omitempty,max=64"`
	AdminRoleID           *string `json:"adminRoleId" binding:"omitempty,max=64"`
	NotifyBeforeDays      *int    `json:"notifyBeforeDays"`
	NotifyBeforeHours     *int    `json:"notifyBeforeHours"`
	IsBotActive           *bool   `json:"isBotActive"`
}

func (r UpdateSettingsRequest) ToPatch() setting.BotSettingsPatch {
	return setting.BotSettingsPatch{
		BotToken:              r.DiscordBotToken,
		ClearBotToken:         r.ClearBotToken,
		ClientID:              r.DiscordClientID,
		GuildID:               r.DiscordGuildID,
		NotificationChannelID: r.NotificationChannelID,
		NitroRoleID:           r.NitroRoleID,
		AdminRoleID:           r.AdminRoleID,
		NotifyBeforeDays:      r.NotifyBeforeDays,
		NotifyBeforeHours:     r.NotifyBeforeHours,
		IsBotActive:           r.IsBotActive,
	}
}

type VerifyCredentialRequest struct {
	DiscordBotToken string `json:"discordBotToken"`
}

type VerifyCredentialResponse struct {
	Valid       bool   `json:"valid"`
	BotID       string `json:"botId"`
	BotUsername string `json:"botUsername"`
}

// ToSettingsResponse masks the token; plainToken is the unsealed credential
// (empty when none is stored).
func ToSettingsResponse(b setting.BotSettings, plainToken string) *SettingsResponse {
	return &SettingsResponse{
		DiscordBotToken:       utils.MaskSecret(plainToken),
		HasBotToken:           b.HasBotToken(),
		DiscordClientID:       b.ClientID,
		DiscordGuildID:        b.GuildID,
		NotificationChannelID: b.NotificationChannelID,
		NitroRoleID:           b.NitroRoleID,
		AdminRoleID:           b.AdminRoleID,
		NotifyBeforeDays:      b.NotifyBeforeDays,
		NotifyBeforeHours:     b.NotifyBeforeHours,
		IsBotActive:           b.IsBotActive,
		UpdatedAt:             b.UpdatedAt,
	}
}

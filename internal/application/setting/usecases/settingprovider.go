package usecases

import (
	"context"
	"fmt"

	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// SettingProvider reads the Discord settings from the database on every call,
// so a save is visible to the next dispatch cycle without a restart.
type SettingProvider struct {
	settingRepo setting.Repository
	sealer      CredentialSealer
	logger      logger.Interface
}

func NewSettingProvider(settingRepo setting.Repository, sealer CredentialSealer, logger logger.Interface) *SettingProvider {
	return &SettingProvider{
		settingRepo: settingRepo,
		sealer:      sealer,
		logger:      logger,
	}
}

// Stored returns the settings as persisted; BotToken may still be sealed.
func (p *SettingProvider) Stored(ctx context.Context) (setting.BotSettings, error) {
	rows, err := p.settingRepo.GetByCategory(ctx, setting.CategoryDiscord)
	if err != nil {
		return setting.BotSettings{}, fmt.Errorf("failed to load discord settings: %w", err)
	}
	return setting.LoadBotSettings(rows)
}

// BotSettings returns the settings with the bot token unsealed.
func (p *SettingProvider) BotSettings(ctx context.Context) (setting.BotSettings, error) {
	b, err := p.Stored(ctx)
	if err != nil {
		return setting.BotSettings{}, err
	}
	if b.BotToken == "" {
		return b, nil
	}
	plain, err := p.sealer.Open(b.BotToken)
	if err != nil {
		p.logger.Errorw("stored bot token cannot be unsealed", "error", err)
		return setting.BotSettings{}, fmt.Errorf("failed to unseal bot token: %w", err)
	}
	b.BotToken = plain
	return b, nil
}

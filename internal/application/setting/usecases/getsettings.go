package usecases

import (
	"context"

	"github.com/nitrodesk/nitrodesk/internal/application/setting/dto"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// GetSettingsUseCase returns the redacted Discord settings.
type GetSettingsUseCase struct {
	provider *SettingProvider
	logger   logger.Interface
}

func NewGetSettingsUseCase(provider *SettingProvider, logger logger.Interface) *GetSettingsUseCase {
	return &GetSettingsUseCase{
		provider: provider,
		logger:   logger,
	}
}

func (uc *GetSettingsUseCase) Execute(ctx context.Context) (*dto.SettingsResponse, error) {
	b, err := uc.provider.BotSettings(ctx)
	if err != nil {
		uc.logger.Errorw("failed to get settings", "error", err)
		return nil, errors.NewPersistenceError("failed to load settings").WithCause(err)
	}
	return dto.ToSettingsResponse(b, b.BotToken), nil
}

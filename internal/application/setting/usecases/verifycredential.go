package usecases

import (
	"context"
	"strings"

	"github.com/nitrodesk/nitrodesk/internal/application/setting/dto"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/discord"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// VerifyCredentialUseCase checks a bot token against Discord without saving it.
type VerifyCredentialUseCase struct {
	provider *SettingProvider
	discord  BotIdentityFetcher
	logger   logger.Interface
}

func NewVerifyCredentialUseCase(provider *SettingProvider, discord BotIdentityFetcher, logger logger.Interface) *VerifyCredentialUseCase {
	return &VerifyCredentialUseCase{
		provider: provider,
		discord:  discord,
		logger:   logger,
	}
}

// Execute verifies token, or the stored token when token is empty.
func (uc *VerifyCredentialUseCase) Execute(ctx context.Context, token string) (*dto.VerifyCredentialResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		b, err := uc.provider.BotSettings(ctx)
		if err != nil {
			return nil, errors.NewPersistenceError("failed to load settings").WithCause(err)
		}
		token = b.BotToken
	}
	if token == "" {
		return nil, errors.NewInvalidCredentialError("no bot token provided or stored")
	}

	user, err := uc.discord.GetCurrentUser(ctx, token)
	if err != nil {
		if discord.IsUnauthorized(err) {
			uc.logger.Warnw("bot token rejected by discord")
			return nil, errors.NewInvalidCredentialError("discord rejected the bot token").WithCause(err)
		}
		uc.logger.Errorw("failed to verify bot token", "error", err)
		return nil, errors.NewDeliveryError("failed to reach discord").WithCause(err)
	}

	uc.logger.Infow("bot token verified", "bot_id", user.ID, "bot_username", user.Username)
	return &dto.VerifyCredentialResponse{
		Valid:       true,
		BotID:       user.ID,
		BotUsername: user.Username,
	}, nil
}

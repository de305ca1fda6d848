package usecases

import (
	"context"

	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
)

// activeSettings loads the settings and rejects an inactive bot before any
// other I/O, then a missing token.
func activeSettings(ctx context.Context, src SettingsSource) (setting.BotSettings, error) {
	s, err := src.BotSettings(ctx)
	if err != nil {
		return setting.BotSettings{}, errors.NewPersistenceError("failed to load settings").WithCause(err)
	}
	if !s.IsBotActive {
		return setting.BotSettings{}, errors.NewBotInactiveError("the bot is not active")
	}
	if !s.HasBotToken() {
		return setting.BotSettings{}, errors.NewInvalidCredentialError("no bot token configured")
	}
	return s, nil
}

// cycleResult labels a cycle that stopped before dispatching.
func cycleResult(err error) string {
	switch {
	case errors.IsBotInactiveError(err):
		return "bot_inactive"
	case errors.IsInvalidCredentialError(err):
		return "invalid_credential"
	default:
		return "error"
	}
}

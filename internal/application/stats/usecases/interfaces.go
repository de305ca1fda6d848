package usecases

import (
	"context"
	"time"

	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
)

type SettingsReader interface {
	Stored(ctx context.Context) (setting.BotSettings, error)
}

// ExpiringFinder is the eligibility selector's read side.
type ExpiringFinder interface {
	FindExpiringSoon(ctx context.Context, now time.Time, thresholdDays int) ([]customer.View, error)
}

type SentCounter interface {
	CountSuccessfulSince(ctx context.Context, since time.Time) (int64, error)
}

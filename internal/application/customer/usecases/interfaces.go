package usecases

import (
	"context"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
)

// SettingsReader supplies the thresholds that shape the derived view.
type SettingsReader interface {
	Stored(ctx context.Context) (setting.BotSettings, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, e activityApp.Entry)
}

// RenewalNotifier sends the RENEWED message after a renewal.
type RenewalNotifier interface {
	SendRenewalNotification(ctx context.Context, customerID, actorID string) error
}

// recentNotificationsPerCustomer bounds the history attached to responses.
const recentNotificationsPerCustomer = 5

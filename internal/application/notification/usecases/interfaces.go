package usecases

import (
	"context"
	"time"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/email"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/template"
)

// SettingsSource returns the Discord settings with the bot token unsealed.
type SettingsSource interface {
	BotSettings(ctx context.Context) (setting.BotSettings, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, e activityApp.Entry)
}

// Deliverer posts content for userID to channelID, or as a DM when channelID is empty.
type Deliverer interface {
	Deliver(ctx context.Context, token, channelID, userID, content string) error
}

type MessageRenderer interface {
	Data(v customer.View, message string) template.MessageData
	Render(kind template.Kind, data template.MessageData) (string, error)
}

// CycleReporter mails a summary after a dispatch cycle.
type CycleReporter interface {
	SendCycleReport(ctx context.Context, r email.CycleReport) error
}

type DispatchMetrics interface {
	IncDelivery(notificationType, outcome string)
	ObserveDelivery(notificationType string, d time.Duration)
	ObserveCycle(result string, d time.Duration, at time.Time)
	AddExpired(n int)
}

type nopMetrics struct{}

func (nopMetrics) IncDelivery(string, string)                    {}
func (nopMetrics) ObserveDelivery(string, time.Duration)         {}
func (nopMetrics) ObserveCycle(string, time.Duration, time.Time) {}
func (nopMetrics) AddExpired(int)                                {}

// Delivery outcomes reported to DispatchMetrics.
const (
	outcomeSent     = "sent"
	outcomeFailed   = "failed"
	outcomeSkipped  = "skipped"
	outcomeDeferred = "deferred"
)

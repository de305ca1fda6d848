package usecases

import (
	"context"

	"github.com/nitrodesk/nitrodesk/internal/application/notification/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/template"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// SendSingleNotificationUseCase sends one message to one customer outside the
// reminder cycle: manual, renewal and expiry notices. Eligibility and dedup
// do not apply; the bot must still be active.
type SendSingleNotificationUseCase struct {
	settings     SettingsSource
	customerRepo customer.Repository
	deps         deliveryDeps
	logger       logger.Interface
}

func NewSendSingleNotificationUseCase(
	settings SettingsSource,
	customerRepo customer.Repository,
	notifRepo notification.Repository,
	deliverer Deliverer,
	renderer MessageRenderer,
	recorder ActivityRecorder,
	metrics DispatchMetrics,
	clock biztime.Clock,
	logger logger.Interface,
) *SendSingleNotificationUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &SendSingleNotificationUseCase{
		settings:     settings,
		customerRepo: customerRepo,
		deps: deliveryDeps{
			notifRepo: notifRepo,
			deliverer: deliverer,
			renderer:  renderer,
			recorder:  recorder,
			metrics:   metrics,
			clock:     clock,
			logger:    logger,
		},
		logger: logger,
	}
}

// SendManual delivers the manual template with an optional admin message.
// A failed delivery is still recorded and comes back as a DeliveryError.
func (uc *SendSingleNotificationUseCase) SendManual(ctx context.Context, customerID, message, actorID string) (*dto.NotificationResponse, error) {
	return uc.send(ctx, customerID, notification.TypeManual, template.KindManual, message, actorID)
}

func (uc *SendSingleNotificationUseCase) SendRenewal(ctx context.Context, customerID, actorID string) (*dto.NotificationResponse, error) {
	return uc.send(ctx, customerID, notification.TypeRenewed, template.KindRenewed, "", actorID)
}

func (uc *SendSingleNotificationUseCase) sendExpired(ctx context.Context, s setting.BotSettings, v customer.View, actorID string) error {
	_, err := deliverAndRecord(context.WithoutCancel(ctx), uc.deps, delivery{
		settings: s,
		view:     v,
		kind:     template.KindExpired,
		nType:    notification.TypeExpired,
		actorID:  actorID,
	})
	return err
}

func (uc *SendSingleNotificationUseCase) send(ctx context.Context, customerID string, nType notification.Type, kind template.Kind, message, actorID string) (*dto.NotificationResponse, error) {
	s, err := activeSettings(ctx, uc.settings)
	if err != nil {
		return nil, err
	}

	c, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.NewNotFoundError("customer not found", customerID)
	}

	v := customer.NewView(c, uc.deps.clock.Now(), s.NotifyBeforeDays)
	rec, err := deliverAndRecord(context.WithoutCancel(ctx), uc.deps, delivery{
		settings: s,
		view:     v,
		kind:     kind,
		nType:    nType,
		message:  message,
		actorID:  actorID,
	})
	if err != nil {
		return nil, errors.NewDeliveryError("failed to deliver notification", err.Error()).WithCause(err)
	}
	if rec == nil {
		// Delivered but unrecorded; the message is out, so report it as sent.
		uc.logger.Warnw("notification delivered without a record", "customer_id", c.ID(), "type", nType)
		return &dto.NotificationResponse{
			CustomerID: c.ID(),
			Type:       string(nType),
			SentAt:     uc.deps.clock.Now().UTC(),
			Success:    true,
			Customer: dto.CustomerRef{
				DiscordID:       c.DiscordID(),
				DiscordUsername: c.DiscordUsername(),
			},
		}, nil
	}
	resp := dto.ToNotificationResponse(rec)
	return &resp, nil
}

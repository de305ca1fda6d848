package notification

import (
	"context"
	"time"

	"github.com/nitrodesk/nitrodesk/internal/application/notification/dto"
	"github.com/nitrodesk/nitrodesk/internal/application/notification/usecases"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/cache"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// Dependencies wires the notification engine.
type Dependencies struct {
	Settings     usecases.SettingsSource
	CustomerRepo customer.Repository
	NotifRepo    notification.Repository
	Deliverer    usecases.Deliverer
	Renderer     usecases.MessageRenderer
	Locks        cache.InflightLock
	Recorder     usecases.ActivityRecorder
	// Reporter is optional.
	Reporter usecases.CycleReporter
	Metrics  usecases.DispatchMetrics
	Clock    biztime.Clock
	Dispatch usecases.DispatchConfig
	// NotifyOnExpiry sends an EXPIRED notice from the expiry pass.
	NotifyOnExpiry bool
}

// ServiceDDD aggregates the selector and dispatcher use cases.
type ServiceDDD struct {
	selector     *usecases.Selector
	sendExpiring *usecases.SendExpiringNotificationsUseCase
	sendSingle   *usecases.SendSingleNotificationUseCase
	markExpired  *usecases.MarkExpiredUseCase
	listUC       *usecases.ListNotificationsUseCase
	clock        biztime.Clock
	settings     usecases.SettingsSource
	logger       logger.Interface
}

func NewServiceDDD(deps Dependencies, logger logger.Interface) *ServiceDDD {
	if deps.Clock == nil {
		deps.Clock = biztime.SystemClock()
	}
	if deps.Locks == nil {
		deps.Locks = cache.NewMemoryInflightLock()
	}
	selector := usecases.NewSelector(deps.CustomerRepo, deps.Recorder, deps.Metrics, logger)
	sendSingle := usecases.NewSendSingleNotificationUseCase(
		deps.Settings, deps.CustomerRepo, deps.NotifRepo, deps.Deliverer, deps.Renderer,
		deps.Recorder, deps.Metrics, deps.Clock, logger,
	)

	return &ServiceDDD{
		selector: selector,
		sendExpiring: usecases.NewSendExpiringNotificationsUseCase(
			deps.Settings, selector, deps.NotifRepo, deps.Deliverer, deps.Renderer, deps.Locks,
			deps.Recorder, deps.Reporter, deps.Metrics, deps.Clock, deps.Dispatch, logger,
		),
		sendSingle:  sendSingle,
		markExpired: usecases.NewMarkExpiredUseCase(selector, deps.Settings, sendSingle, deps.NotifyOnExpiry, logger),
		listUC:      usecases.NewListNotificationsUseCase(deps.NotifRepo, logger),
		clock:       deps.Clock,
		settings:    deps.Settings,
		logger:      logger,
	}
}

// Now is the service clock; handlers and commands pass it to the operations below.
func (s *ServiceDDD) Now() time.Time {
	return s.clock.Now()
}

func (s *ServiceDDD) SendExpiringNotifications(ctx context.Context, now time.Time) (*dto.DispatchResult, error) {
	return s.sendExpiring.Execute(ctx, now)
}

func (s *ServiceDDD) MarkExpired(ctx context.Context, now time.Time, actorID string) (*dto.MarkExpiredResult, error) {
	return s.markExpired.Execute(ctx, now, actorID)
}

func (s *ServiceDDD) SendManualNotification(ctx context.Context, customerID, message, actorID string) (*dto.NotificationResponse, error) {
	return s.sendSingle.SendManual(ctx, customerID, message, actorID)
}

// SendRenewalNotification satisfies the customer service's RenewalNotifier.
func (s *ServiceDDD) SendRenewalNotification(ctx context.Context, customerID, actorID string) error {
	_, err := s.sendSingle.SendRenewal(ctx, customerID, actorID)
	return err
}

func (s *ServiceDDD) ListNotifications(ctx context.Context, req dto.ListNotificationsRequest) ([]dto.NotificationResponse, error) {
	return s.listUC.Execute(ctx, req)
}

// FindExpiringSoon uses the stored notifyBeforeDays threshold.
func (s *ServiceDDD) FindExpiringSoon(ctx context.Context, now time.Time) ([]dto.ExpiringCustomer, error) {
	b, err := s.settings.BotSettings(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.selector.FindExpiringSoon(ctx, now, b.NotifyBeforeDays)
	if err != nil {
		return nil, err
	}
	return dto.ToExpiringCustomers(views), nil
}

func (s *ServiceDDD) FindNewlyExpired(ctx context.Context, now time.Time) ([]dto.ExpiringCustomer, error) {
	views, err := s.selector.FindNewlyExpired(ctx, now)
	if err != nil {
		return nil, err
	}
	return dto.ToExpiringCustomers(views), nil
}

// Selector exposes the eligibility selector to read models such as the dashboard.
func (s *ServiceDDD) Selector() *usecases.Selector {
	return s.selector
}

package usecases

import (
	"context"
	"fmt"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/application/customer/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

// RenewCustomerUseCase extends a subscription and tells the subscriber.
type RenewCustomerUseCase struct {
	customerRepo customer.Repository
	recorder     ActivityRecorder
	notifier     RenewalNotifier
	views        *viewBuilder
	clock        biztime.Clock
	logger       logger.Interface
}

func NewRenewCustomerUseCase(
	customerRepo customer.Repository,
	notifRepo notification.Repository,
	settings SettingsReader,
	recorder ActivityRecorder,
	notifier RenewalNotifier,
	clock biztime.Clock,
	logger logger.Interface,
) *RenewCustomerUseCase {
	return &RenewCustomerUseCase{
		customerRepo: customerRepo,
		recorder:     recorder,
		notifier:     notifier,
		views:        &viewBuilder{settings: settings, notifRepo: notifRepo, clock: clock, logger: logger},
		clock:        clock,
		logger:       logger,
	}
}

// Execute renews the customer. The RENEWED message is best-effort: its
// failure is logged and the renewal still succeeds.
func (uc *RenewCustomerUseCase) Execute(ctx context.Context, id string, req dto.RenewCustomerRequest, actorID string) (*dto.CustomerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.NewNotFoundError("customer not found", id)
	}

	previousEnd := c.EndDate()
	if err := c.Renew(req.Months, uc.clock.Now()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.customerRepo.Update(ctx, c); err != nil {
		return nil, mapDomainError(err)
	}

	uc.recorder.Record(ctx, activityApp.Entry{
		Action:      activity.ActionUpdate,
		EntityType:  activity.EntityCustomer,
		EntityID:    c.ID(),
		Description: fmt.Sprintf("Renewed customer %s for %d months", c.DisplayName(), req.Months),
		ActorID:     actorID,
		Metadata: map[string]any{
			"months":          req.Months,
			"previousEndDate": previousEnd.Format("2006-01-02"),
			"endDate":         c.EndDate().Format("2006-01-02"),
		},
	})
	uc.logger.Infow("customer renewed", "customer_id", c.ID(), "months", req.Months)

	if uc.notifier != nil {
		if err := uc.notifier.SendRenewalNotification(ctx, c.ID(), actorID); err != nil {
			if errors.IsBotInactiveError(err) || errors.IsInvalidCredentialError(err) {
				uc.logger.Infow("renewal notification skipped", "customer_id", c.ID(), "reason", err.Error())
			} else {
				uc.logger.Warnw("renewal notification failed", "customer_id", c.ID(), "error", err)
			}
		}
	}

	return uc.views.one(ctx, c)
}

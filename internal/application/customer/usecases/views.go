package usecases

import (
	"context"
	stderrors "errors"

	"github.com/nitrodesk/nitrodesk/internal/application/customer/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// viewBuilder turns stored customers into responses carrying the derived
// fields for the current instant and their latest notifications.
type viewBuilder struct {
	settings  SettingsReader
	notifRepo notification.Repository
	clock     biztime.Clock
	logger    logger.Interface
}

func (b *viewBuilder) build(ctx context.Context, customers []*customer.Customer) ([]*dto.CustomerResponse, error) {
	s, err := b.settings.Stored(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load settings").WithCause(err)
	}

	ids := make([]string, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID())
	}
	recent := map[string][]*notification.Record{}
	if len(ids) > 0 {
		recent, err = b.notifRepo.RecentByCustomers(ctx, ids, recentNotificationsPerCustomer)
		if err != nil {
			// History is decoration; the customer data is still served.
			b.logger.Warnw("failed to load recent notifications", "error", err)
			recent = map[string][]*notification.Record{}
		}
	}

	now := b.clock.Now()
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, dto.ToCustomerResponse(customer.NewView(c, now, s.NotifyBeforeDays), recent[c.ID()]))
	}
	return out, nil
}

func (b *viewBuilder) one(ctx context.Context, c *customer.Customer) (*dto.CustomerResponse, error) {
	out, err := b.build(ctx, []*customer.Customer{c})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// mapDomainError turns customer domain errors into AppErrors.
func mapDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, customer.ErrCustomerNotFound):
		return errors.NewNotFoundError("customer not found")
	case stderrors.Is(err, customer.ErrDuplicateDiscord):
		return errors.NewConflictError(customer.ErrDuplicateDiscord.Error())
	default:
		return errors.NewValidationError(err.Error())
	}
}

package usecases

import (
	"context"
	"fmt"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// DeleteCustomerUseCase removes a customer. Notification history is kept.
type DeleteCustomerUseCase struct {
	customerRepo customer.Repository
	recorder     ActivityRecorder
	logger       logger.Interface
}

func NewDeleteCustomerUseCase(customerRepo customer.Repository, recorder ActivityRecorder, logger logger.Interface) *DeleteCustomerUseCase {
	return &DeleteCustomerUseCase{
		customerRepo: customerRepo,
		recorder:     recorder,
		logger:       logger,
	}
}

func (uc *DeleteCustomerUseCase) Execute(ctx context.Context, id, actorID string) error {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return errors.NewNotFoundError("customer not found", id)
	}

	if err := uc.customerRepo.Delete(ctx, id); err != nil {
		return mapDomainError(err)
	}

	uc.recorder.Record(ctx, activityApp.Entry{
		Action:      activity.ActionDelete,
		EntityType:  activity.EntityCustomer,
		EntityID:    id,
		Description: fmt.Sprintf("Deleted customer %s", c.DisplayName()),
		ActorID:     actorID,
		Metadata:    map[string]any{"discordId": c.DiscordID()},
	})
	uc.logger.Infow("customer deleted", "customer_id", id)
	return nil
}

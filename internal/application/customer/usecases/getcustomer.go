package usecases

import (
	"context"

	"github.com/nitrodesk/nitrodesk/internal/application/customer/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

type GetCustomerUseCase struct {
	customerRepo customer.Repository
	views        *viewBuilder
}

func NewGetCustomerUseCase(
	customerRepo customer.Repository,
	notifRepo notification.Repository,
	settings SettingsReader,
	clock biztime.Clock,
	logger logger.Interface,
) *GetCustomerUseCase {
	return &GetCustomerUseCase{
		customerRepo: customerRepo,
		views:        &viewBuilder{settings: settings, notifRepo: notifRepo, clock: clock, logger: logger},
	}
}

func (uc *GetCustomerUseCase) Execute(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.NewNotFoundError("customer not found", id)
	}
	return uc.views.one(ctx, c)
}

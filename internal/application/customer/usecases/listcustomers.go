package usecases

import (
	"context"

	"github.com/nitrodesk/nitrodesk/internal/application/customer/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

type ListCustomersUseCase struct {
	customerRepo customer.Repository
	views        *viewBuilder
	logger       logger.Interface
}

func NewListCustomersUseCase(
	customerRepo customer.Repository,
	notifRepo notification.Repository,
	settings SettingsReader,
	clock biztime.Clock,
	logger logger.Interface,
) *ListCustomersUseCase {
	return &ListCustomersUseCase{
		customerRepo: customerRepo,
		views:        &viewBuilder{settings: settings, notifRepo: notifRepo, clock: clock, logger: logger},
		logger:       logger,
	}
}

// Execute lists customers newest first. An empty status or "ALL" means no
// status filter.
func (uc *ListCustomersUseCase) Execute(ctx context.Context, req dto.ListCustomersRequest) (*dto.ListCustomersResponse, error) {
	p := utils.ValidatePagination(req.Page, req.PageSize)
	filter := customer.Filter{
		Search:   req.Search,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if req.Status != "" && req.Status != "ALL" {
		status, err := vo.ParseStatus(req.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	list, total, err := uc.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items, err := uc.views.build(ctx, list)
	if err != nil {
		return nil, err
	}
	return &dto.ListCustomersResponse{
		Customers: items,
		Total:     total,
		Page:      p.Page,
		PageSize:  p.PageSize,
	}, nil
}

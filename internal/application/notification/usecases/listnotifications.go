package usecases

import (
	"context"

	"github.com/nitrodesk/nitrodesk/internal/application/notification/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

type ListNotificationsUseCase struct {
	notifRepo notification.Repository
	logger    logger.Interface
}

func NewListNotificationsUseCase(notifRepo notification.Repository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{notifRepo: notifRepo, logger: logger}
}

// Execute returns history newest first; limit defaults to 50, max 500.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, req dto.ListNotificationsRequest) ([]dto.NotificationResponse, error) {
	filter := notification.Filter{
		CustomerID: req.CustomerID,
		Success:    req.Success,
		Limit:      req.Limit,
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = constants.DefaultHistoryLimit
	case filter.Limit > constants.MaxHistoryLimit:
		filter.Limit = constants.MaxHistoryLimit
	}
	if req.Type != "" {
		t, err := notification.ParseType(req.Type)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Type = &t
	}

	records, err := uc.notifRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.ToNotificationResponses(records), nil
}

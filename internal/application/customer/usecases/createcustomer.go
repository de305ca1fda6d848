package usecases

import (
	"context"
	"fmt"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/application/customer/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

type CreateCustomerUseCase struct {
	customerRepo customer.Repository
	recorder     ActivityRecorder
	views        *viewBuilder
	clock        biztime.Clock
	logger       logger.Interface
}

func NewCreateCustomerUseCase(
	customerRepo customer.Repository,
	notifRepo notification.Repository,
	settings SettingsReader,
	recorder ActivityRecorder,
	clock biztime.Clock,
	logger logger.Interface,
) *CreateCustomerUseCase {
	return &CreateCustomerUseCase{
		customerRepo: customerRepo,
		recorder:     recorder,
		views:        &viewBuilder{settings: settings, notifRepo: notifRepo, clock: clock, logger: logger},
		clock:        clock,
		logger:       logger,
	}
}

func (uc *CreateCustomerUseCase) Execute(ctx context.Context, req dto.CreateCustomerRequest, actorID string) (*dto.CustomerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	params := customer.CreateParams{
		DiscordID:       req.DiscordID,
		DiscordUsername: req.DiscordUsername,
		DiscordAvatar:   req.DiscordAvatar,
		NitroType:       vo.NitroType(req.NitroType),
		DurationMonths:  req.DurationMonths,
		Price:           req.Price,
		Notes:           req.Notes,
	}
	if req.StartDate != "" {
		start, err := dto.ParseDate(req.StartDate)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		params.StartDate = start
	}

	existing, err := uc.customerRepo.GetByDiscordID(ctx, params.DiscordID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError(customer.ErrDuplicateDiscord.Error())
	}

	c, err := customer.NewCustomer(params, uc.clock.Now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.customerRepo.Create(ctx, c); err != nil {
		return nil, mapDomainError(err)
	}

	uc.recorder.Record(ctx, activityApp.Entry{
		Action:      activity.ActionCreate,
		EntityType:  activity.EntityCustomer,
		EntityID:    c.ID(),
		Description: fmt.Sprintf("Created customer %s (%s, %d months)", c.DisplayName(), c.NitroType(), c.DurationMonths()),
		ActorID:     actorID,
		Metadata:    map[string]any{"discordId": c.DiscordID(), "nitroType": c.NitroType().String()},
	})
	uc.logger.Infow("customer created", "customer_id", c.ID(), "discord_id", c.DiscordID())

	return uc.views.one(ctx, c)
}

package usecases

import (
	"context"
	"fmt"
	"strings"

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

type UpdateCustomerUseCase struct {
	customerRepo customer.Repository
	recorder     ActivityRecorder
	views        *viewBuilder
	clock        biztime.Clock
	logger       logger.Interface
}

func NewUpdateCustomerUseCase(
	customerRepo customer.Repository,
	notifRepo notification.Repository,
	settings SettingsReader,
	recorder ActivityRecorder,
	clock biztime.Clock,
	logger logger.Interface,
) *UpdateCustomerUseCase {
	return &UpdateCustomerUseCase{
		customerRepo: customerRepo,
		recorder:     recorder,
		views:        &viewBuilder{settings: settings, notifRepo: notifRepo, clock: clock, logger: logger},
		clock:        clock,
		logger:       logger,
	}
}

func (uc *UpdateCustomerUseCase) Execute(ctx context.Context, req dto.UpdateCustomerRequest, actorID string) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, errors.NewValidationError("customer id is required")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	c, err := uc.customerRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.NewNotFoundError("customer not found", req.ID)
	}
	if patch.IsEmpty() {
		return uc.views.one(ctx, c)
	}

	if patch.DiscordID != nil && strings.TrimSpace(*patch.DiscordID) != c.DiscordID() {
		other, err := uc.customerRepo.GetByDiscordID(ctx, strings.TrimSpace(*patch.DiscordID))
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID() != c.ID() {
			return nil, errors.NewConflictError(customer.ErrDuplicateDiscord.Error())
		}
	}

	if err := c.Apply(patch, uc.clock.Now()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.customerRepo.Update(ctx, c); err != nil {
		return nil, mapDomainError(err)
	}

	fields := changedFields(req)
	uc.recorder.Record(ctx, activityApp.Entry{
		Action:      activity.ActionUpdate,
		EntityType:  activity.EntityCustomer,
		EntityID:    c.ID(),
		Description: fmt.Sprintf("Updated customer %s: %s", c.DisplayName(), strings.Join(fields, ", ")),
		ActorID:     actorID,
		Metadata:    map[string]any{"fields": fields},
	})
	uc.logger.Infow("customer updated", "customer_id", c.ID(), "fields", fields)

	return uc.views.one(ctx, c)
}

func changedFields(req dto.UpdateCustomerRequest) []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(req.DiscordID != nil, "discordId")
	add(req.DiscordUsername != nil, "discordUsername")
	add(req.DiscordAvatar != nil, "discordAvatar")
	add(req.NitroType != nil, "nitroType")
	add(req.StartDate != nil, "startDate")
	add(req.DurationMonths != nil, "durationMonths")
	add(req.Price != nil || req.ClearPrice, "price")
	add(req.Notes != nil, "notes")
	add(req.Status != nil, "status")
	return fields
}

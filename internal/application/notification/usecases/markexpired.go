package usecases

import (
	"context"
	"time"

	"github.com/nitrodesk/nitrodesk/internal/application/notification/dto"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// MarkExpiredUseCase runs the expiry pass and, when enabled, sends an
// EXPIRED notice to every customer it transitioned.
type MarkExpiredUseCase struct {
	selector       *Selector
	settings       SettingsSource
	sender         *SendSingleNotificationUseCase
	notifyOnExpiry bool
	logger         logger.Interface
}

func NewMarkExpiredUseCase(
	selector *Selector,
	settings SettingsSource,
	sender *SendSingleNotificationUseCase,
	notifyOnExpiry bool,
	logger logger.Interface,
) *MarkExpiredUseCase {
	return &MarkExpiredUseCase{
		selector:       selector,
		settings:       settings,
		sender:         sender,
		notifyOnExpiry: notifyOnExpiry,
		logger:         logger,
	}
}

func (uc *MarkExpiredUseCase) Execute(ctx context.Context, now time.Time, actorID string) (*dto.MarkExpiredResult, error) {
	transitioned, err := uc.selector.markExpired(ctx, now, actorID)
	if err != nil {
		return nil, err
	}
	result := &dto.MarkExpiredResult{UpdatedCount: len(transitioned)}
	if !uc.notifyOnExpiry || len(transitioned) == 0 {
		return result, nil
	}

	s, err := activeSettings(ctx, uc.settings)
	if err != nil {
		uc.logger.Infow("expiry notices skipped", "reason", err.Error(), "customers", len(transitioned))
		return result, nil
	}
	for _, v := range transitioned {
		if ctx.Err() != nil {
			break
		}
		if err := uc.sender.sendExpired(ctx, s, v, actorID); err == nil {
			result.NotifiedCount++
		}
	}
	return result, nil
}

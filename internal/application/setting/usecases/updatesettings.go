package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/application/setting/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// UpdateSettingsUseCase applies a partial update to the Discord settings.
type UpdateSettingsUseCase struct {
	settingRepo setting.Repository
	provider    *SettingProvider
	sealer      CredentialSealer
	txManager   TransactionRunner
	recorder    ActivityRecorder
	clock       biztime.Clock
	logger      logger.Interface
}

func NewUpdateSettingsUseCase(
	settingRepo setting.Repository,
	provider *SettingProvider,
	sealer CredentialSealer,
	txManager TransactionRunner,
	recorder ActivityRecorder,
	clock biztime.Clock,
	logger logger.Interface,
) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{
		settingRepo: settingRepo,
		provider:    provider,
		sealer:      sealer,
		txManager:   txManager,
		recorder:    recorder,
		clock:       clock,
		logger:      logger,
	}
}

// Execute validates the patch, writes every changed key in one transaction and
// returns the redacted settings.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, req dto.UpdateSettingsRequest, actorID string) (*dto.SettingsResponse, error) {
	changes, err := req.ToPatch().Changes()
	if err != nil {
		if stderrors.Is(err, setting.ErrThresholdRange) {
			return nil, errors.NewValidationError(err.Error())
		}
		return nil, errors.NewValidationError("invalid settings", err.Error())
	}

	if len(changes) > 0 {
		if err := uc.persist(ctx, changes, actorID); err != nil {
			return nil, err
		}
		uc.recorder.Record(ctx, activityApp.Entry{
			Action:      activity.ActionUpdate,
			EntityType:  activity.EntitySettings,
			Description: describeChanges(changes),
			ActorID:     actorID,
			Metadata:    map[string]any{"keys": sortedKeys(changes)},
		})
		uc.logger.Infow("discord settings updated", "keys", sortedKeys(changes), "actor_id", actorID)
	}

	b, err := uc.provider.BotSettings(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to reload settings").WithCause(err)
	}
	return dto.ToSettingsResponse(b, b.BotToken), nil
}

func (uc *UpdateSettingsUseCase) persist(ctx context.Context, changes map[string]string, actorID string) error {
	if token, ok := changes[setting.KeyBotToken]; ok && token != "" {
		sealed, err := uc.sealer.Seal(token)
		if err != nil {
			return errors.NewInternalError("failed to protect bot token").WithCause(err)
		}
		changes[setting.KeyBotToken] = sealed
	}

	now := uc.clock.Now()
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		rows, err := uc.settingRepo.GetByCategory(txCtx, setting.CategoryDiscord)
		if err != nil {
			return err
		}
		existing := make(map[string]*setting.SystemSetting, len(rows))
		for _, row := range rows {
			existing[row.Key()] = row
		}

		for _, key := range sortedKeys(changes) {
			s, ok := existing[key]
			if !ok {
				valueType, _ := setting.BotValueType(key)
				s, err = setting.NewSystemSetting(setting.CategoryDiscord, key, valueType, now)
				if err != nil {
					return err
				}
			}
			s.SetValue(changes[key], actorID, now)
			if err := uc.settingRepo.Upsert(txCtx, s); err != nil {
				return fmt.Errorf("failed to save %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to save settings", "error", err)
		return errors.NewPersistenceError("failed to save settings").WithCause(err)
	}
	return nil
}

// describeChanges names the changed fields and never includes the token value.
func describeChanges(changes map[string]string) string {
	parts := make([]string, 0, len(changes))
	for _, key := range sortedKeys(changes) {
		switch key {
		case setting.KeyBotToken:
			if changes[key] == "" {
				parts = append(parts, "bot token cleared")
			} else {
				parts = append(parts, "bot token replaced")
			}
		case setting.KeyNotifyBeforeDays, setting.KeyNotifyBeforeHours, setting.KeyBotActive:
			parts = append(parts, key+"="+changes[key])
		default:
			parts = append(parts, key)
		}
	}
	return "Updated settings: " + strings.Join(parts, ", ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package setting

import (
	"context"

	"github.com/nitrodesk/nitrodesk/internal/application/setting/dto"
	"github.com/nitrodesk/nitrodesk/internal/application/setting/usecases"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// ServiceDDD aggregates the settings use cases.
type ServiceDDD struct {
	getSettingsUC      *usecases.GetSettingsUseCase
	updateSettingsUC   *usecases.UpdateSettingsUseCase
	verifyCredentialUC *usecases.VerifyCredentialUseCase
	settingProvider    *usecases.SettingProvider
	logger             logger.Interface
}

func NewServiceDDD(
	settingRepo setting.Repository,
	sealer usecases.CredentialSealer,
	txManager usecases.TransactionRunner,
	recorder usecases.ActivityRecorder,
	discord usecases.BotIdentityFetcher,
	clock biztime.Clock,
	logger logger.Interface,
) *ServiceDDD {
	provider := usecases.NewSettingProvider(settingRepo, sealer, logger)

	return &ServiceDDD{
		getSettingsUC:      usecases.NewGetSettingsUseCase(provider, logger),
		updateSettingsUC:   usecases.NewUpdateSettingsUseCase(settingRepo, provider, sealer, txManager, recorder, clock, logger),
		verifyCredentialUC: usecases.NewVerifyCredentialUseCase(provider, discord, logger),
		settingProvider:    provider,
		logger:             logger,
	}
}

func (s *ServiceDDD) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	return s.getSettingsUC.Execute(ctx)
}

func (s *ServiceDDD) Save(ctx context.Context, req dto.UpdateSettingsRequest, actorID string) (*dto.SettingsResponse, error) {
	return s.updateSettingsUC.Execute(ctx, req, actorID)
}

// VerifyCredential falls back to the stored token when token is empty.
func (s *ServiceDDD) VerifyCredential(ctx context.Context, token string) (*dto.VerifyCredentialResponse, error) {
	return s.verifyCredentialUC.Execute(ctx, token)
}

// Provider exposes the unsealed settings to the notification engine.
func (s *ServiceDDD) Provider() *usecases.SettingProvider {
	return s.settingProvider
}

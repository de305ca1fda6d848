package stats

import (
	"context"

	"github.com/nitrodesk/nitrodesk/internal/application/stats/dto"
	"github.com/nitrodesk/nitrodesk/internal/application/stats/usecases"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// ServiceDDD serves the dashboard read model.
type ServiceDDD struct {
	getStatsUC *usecases.GetStatsUseCase
	clock      biztime.Clock
}

func NewServiceDDD(
	customerRepo customer.Repository,
	finder usecases.ExpiringFinder,
	sent usecases.SentCounter,
	settings usecases.SettingsReader,
	clock biztime.Clock,
	logger logger.Interface,
) *ServiceDDD {
	if clock == nil {
		clock = biztime.SystemClock()
	}
	return &ServiceDDD{
		getStatsUC: usecases.NewGetStatsUseCase(customerRepo, finder, sent, settings, logger),
		clock:      clock,
	}
}

func (s *ServiceDDD) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	return s.getStatsUC.Execute(ctx, s.clock.Now())
}

package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	notificationDto "github.com/nitrodesk/nitrodesk/internal/application/notification/dto"
	"github.com/nitrodesk/nitrodesk/internal/application/stats/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

type GetStatsUseCase struct {
	customerRepo customer.Repository
	finder       ExpiringFinder
	sent         SentCounter
	settings     SettingsReader
	logger       logger.Interface
}

func NewGetStatsUseCase(
	customerRepo customer.Repository,
	finder ExpiringFinder,
	sent SentCounter,
	settings SettingsReader,
	logger logger.Interface,
) *GetStatsUseCase {
	return &GetStatsUseCase{
		customerRepo: customerRepo,
		finder:       finder,
		sent:         sent,
		settings:     settings,
		logger:       logger,
	}
}

// Execute builds the dashboard. "Today" starts at midnight in the business timezone.
func (uc *GetStatsUseCase) Execute(ctx context.Context, now time.Time) (*dto.StatsResponse, error) {
	s, err := uc.settings.Stored(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := uc.customerRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	aggregates, err := uc.customerRepo.AggregateByNitroType(ctx)
	if err != nil {
		return nil, err
	}
	expiring, err := uc.finder.FindExpiringSoon(ctx, now, s.NotifyBeforeDays)
	if err != nil {
		return nil, err
	}
	sentToday, err := uc.sent.CountSuccessfulSince(ctx, biztime.StartOfDayUTC(now))
	if err != nil {
		return nil, err
	}

	resp := &dto.StatsResponse{
		ActiveCount:            counts[vo.StatusActive],
		ExpiredCount:           counts[vo.StatusExpired],
		CancelledCount:         counts[vo.StatusCancelled],
		ExpiringSoonCount:      len(expiring),
		ExpiringSoonList:       notificationDto.ToExpiringCustomers(expiring),
		TotalRevenue:           decimal.Zero,
		RevenueByNitroType:     make(map[string]decimal.Decimal, len(vo.AllNitroTypes())),
		CountByNitroType:       make(map[string]int64, len(vo.AllNitroTypes())),
		NotificationsSentToday: sentToday,
	}
	for _, n := range counts {
		resp.TotalCustomers += n
	}
	for _, t := range vo.AllNitroTypes() {
		resp.RevenueByNitroType[t.String()] = decimal.Zero
		resp.CountByNitroType[t.String()] = 0
	}
	for _, agg := range aggregates {
		key := agg.NitroType.String()
		resp.RevenueByNitroType[key] = resp.RevenueByNitroType[key].Add(agg.Revenue)
		resp.CountByNitroType[key] += agg.Count
		resp.TotalRevenue = resp.TotalRevenue.Add(agg.Revenue)
	}

	uc.logger.Debugw("stats computed", "customers", resp.TotalCustomers, "expiring", resp.ExpiringSoonCount)
	return resp, nil
}

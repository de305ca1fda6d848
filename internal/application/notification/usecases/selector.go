package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// Selector picks the customers that a dispatch cycle or the expiry pass acts on.
// The repository narrows the scan; the calculator has the final word.
type Selector struct {
	customerRepo customer.Repository
	recorder     ActivityRecorder
	metrics      DispatchMetrics
	logger       logger.Interface
}

func NewSelector(customerRepo customer.Repository, recorder ActivityRecorder, metrics DispatchMetrics, logger logger.Interface) *Selector {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Selector{
		customerRepo: customerRepo,
		recorder:     recorder,
		metrics:      metrics,
		logger:       logger,
	}
}

// FindExpiringSoon returns ACTIVE customers with 0 < daysLeft <= thresholdDays,
// soonest first. Ties break on endDate, then id.
func (s *Selector) FindExpiringSoon(ctx context.Context, now time.Time, thresholdDays int) ([]customer.View, error) {
	// Every subscription lasts at least a month, so nothing that starts after
	// now+threshold can end inside the window.
	candidates, err := s.customerRepo.FindActiveStartedBefore(ctx, now.AddDate(0, 0, thresholdDays))
	if err != nil {
		return nil, err
	}

	var out []customer.View
	for _, c := range candidates {
		v := customer.NewView(c, now, thresholdDays)
		if v.IsExpiringSoon {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DaysLeft != b.DaysLeft {
			return a.DaysLeft < b.DaysLeft
		}
		if !a.EndDate.Equal(b.EndDate) {
			return a.EndDate.Before(b.EndDate)
		}
		return a.Customer.ID() < b.Customer.ID()
	})
	return out, nil
}

// FindNewlyExpired returns customers whose dates have run out while the
// stored status is still ACTIVE, longest-expired first.
func (s *Selector) FindNewlyExpired(ctx context.Context, now time.Time) ([]customer.View, error) {
	candidates, err := s.customerRepo.FindActiveStartedBefore(ctx, now)
	if err != nil {
		return nil, err
	}

	var out []customer.View
	for _, c := range candidates {
		v := customer.NewView(c, now, 0)
		if v.IsNewlyExpired() {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EndDate.Equal(out[j].EndDate) {
			return out[i].EndDate.Before(out[j].EndDate)
		}
		return out[i].Customer.ID() < out[j].Customer.ID()
	})
	return out, nil
}

// MarkExpired moves every newly expired customer to EXPIRED and returns how
// many rows actually changed. Safe to re-run.
func (s *Selector) MarkExpired(ctx context.Context, now time.Time, actorID string) (int, error) {
	transitioned, err := s.markExpired(ctx, now, actorID)
	return len(transitioned), err
}

// markExpired returns the views of the customers it transitioned. On a
// repository error it stops and returns what it changed so far.
func (s *Selector) markExpired(ctx context.Context, now time.Time, actorID string) ([]customer.View, error) {
	views, err := s.FindNewlyExpired(ctx, now)
	if err != nil {
		return nil, err
	}

	var transitioned []customer.View
	defer func() { s.metrics.AddExpired(len(transitioned)) }()

	for _, v := range views {
		changed, err := s.customerRepo.MarkExpiredIfActive(ctx, v.Customer.ID(), now)
		if err != nil {
			s.logger.Errorw("failed to mark customer expired", "customer_id", v.Customer.ID(), "error", err)
			return transitioned, err
		}
		if !changed {
			continue
		}
		transitioned = append(transitioned, v)
		s.recorder.Record(ctx, activityApp.Entry{
			Action:      activity.ActionUpdate,
			EntityType:  activity.EntityCustomer,
			EntityID:    v.Customer.ID(),
			Description: fmt.Sprintf("Marked customer %s as expired", v.Customer.DisplayName()),
			ActorID:     actorID,
			Metadata: map[string]any{
				"from":    "ACTIVE",
				"to":      "EXPIRED",
				"endDate": v.EndDate.Format(time.RFC3339),
			},
		})
	}

	if len(transitioned) > 0 {
		s.logger.Infow("customers marked expired", "count", len(transitioned))
	}
	return transitioned, nil
}

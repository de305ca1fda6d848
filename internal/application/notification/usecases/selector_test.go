package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

func viewIDs(views []customer.View) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.Customer.ID())
	}
	return ids
}

func TestFindExpiringSoon_OrderAndThreshold(t *testing.T) {
	repo := newMemCustomerRepo(
		newCustomer(t, "cus_c", "300", "carol", day(2024, 1, 5), 1, vo.StatusActive),
		newCustomer(t, "cus_b2", "201", "", day(2024, 1, 3), 1, vo.StatusActive),
		newCustomer(t, "cus_a", "100", "alice", day(2024, 1, 1), 1, vo.StatusActive),
		newCustomer(t, "cus_b1", "200", "", day(2024, 1, 3), 1, vo.StatusActive),
		// 7 days left: on the threshold, included.
		newCustomer(t, "cus_edge", "500", "", day(2024, 1, 6), 1, vo.StatusActive),
		// 8 days left: outside.
		newCustomer(t, "cus_far", "600", "", day(2024, 1, 7), 1, vo.StatusActive),
		// 0 days left: expired, never expiring soon.
		newCustomer(t, "cus_zero", "700", "", day(2023, 12, 29), 1, vo.StatusActive),
		newCustomer(t, "cus_cancelled", "800", "", day(2024, 1, 1), 1, vo.StatusCancelled),
	)
	s := NewSelector(repo, &recordedEntries{}, nil, logger.NewNopLogger())

	views, err := s.FindExpiringSoon(context.Background(), now, 7)
	require.NoError(t, err)

	assert.Equal(t, []string{"cus_a", "cus_b1", "cus_b2", "cus_c", "cus_edge"}, viewIDs(views))
	assert.Equal(t, 2, views[0].DaysLeft)
	assert.Equal(t, 7, views[4].DaysLeft)
}

func TestFindNewlyExpired(t *testing.T) {
	repo := newMemCustomerRepo(
		newCustomer(t, "cus_old", "1", "", day(2023, 11, 15), 1, vo.StatusActive),
		newCustomer(t, "cus_recent", "2", "", day(2023, 12, 20), 1, vo.StatusActive),
		newCustomer(t, "cus_done", "3", "", day(2023, 11, 1), 1, vo.StatusExpired),
		newCustomer(t, "cus_live", "4", "", day(2024, 1, 20), 1, vo.StatusActive),
	)
	s := NewSelector(repo, &recordedEntries{}, nil, logger.NewNopLogger())

	views, err := s.FindNewlyExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"cus_old", "cus_recent"}, viewIDs(views))
}

type countingMetrics struct {
	nopMetrics
	expired int
}

func (m *countingMetrics) AddExpired(n int) { m.expired += n }

func TestMarkExpired_Idempotent(t *testing.T) {
	repo := newMemCustomerRepo(
		newCustomer(t, "cus_old", "1", "olga", day(2023, 11, 15), 1, vo.StatusActive),
		newCustomer(t, "cus_recent", "2", "", day(2023, 12, 20), 1, vo.StatusActive),
		newCustomer(t, "cus_done", "3", "", day(2023, 11, 1), 1, vo.StatusExpired),
		newCustomer(t, "cus_live", "4", "", day(2024, 1, 20), 1, vo.StatusActive),
	)
	recorder := &recordedEntries{}
	metrics := &countingMetrics{}
	s := NewSelector(repo, recorder, metrics, logger.NewNopLogger())
	ctx := context.Background()

	count, err := s.MarkExpired(ctx, now, "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, vo.StatusExpired, repo.status("cus_old"))
	assert.Equal(t, vo.StatusExpired, repo.status("cus_recent"))
	assert.Equal(t, vo.StatusActive, repo.status("cus_live"))

	entries := recorder.snapshot()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, activity.ActionUpdate, e.Action)
		assert.Equal(t, activity.EntityCustomer, e.EntityType)
		assert.Equal(t, "admin", e.ActorID)
	}
	assert.Equal(t, "Marked customer olga as expired", entries[0].Description)

	again, err := s.MarkExpired(ctx, now, "admin")
	require.NoError(t, err)
	assert.Zero(t, again)
	assert.Len(t, recorder.snapshot(), 2)
	assert.Equal(t, 2, metrics.expired)
}

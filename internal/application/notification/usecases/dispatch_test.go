package usecases

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/cache"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

var now = time.Date(2024, 1, 29, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type dispatchFixture struct {
	customers *memCustomerRepo
	notifs    *memNotificationRepo
	settings  *staticSettings
	deliverer *fakeDeliverer
	recorder  *recordedEntries
	locks     *cache.MemoryInflightLock
	uc        *SendExpiringNotificationsUseCase
}

func newDispatchFixture(t *testing.T, concurrency int, customers ...*customer.Customer) *dispatchFixture {
	t.Helper()
	f := &dispatchFixture{
		customers: newMemCustomerRepo(customers...),
		notifs:    &memNotificationRepo{},
		settings:  activeBot(),
		deliverer: &fakeDeliverer{},
		recorder:  &recordedEntries{},
		locks:     cache.NewMemoryInflightLock(),
	}
	log := logger.NewNopLogger()
	selector := NewSelector(f.customers, f.recorder, nil, log)
	f.uc = NewSendExpiringNotificationsUseCase(
		f.settings, selector, f.notifs, f.deliverer, newRenderer(t), f.locks, f.recorder,
		nil, nil, biztime.FixedClock(now), DispatchConfig{MaxConcurrency: concurrency}, log,
	)
	return f
}

// threeExpiring returns alice, bob and carol with 2, 4 and 6 days left at now.
func threeExpiring(t *testing.T) []*customer.Customer {
	return []*customer.Customer{
		newCustomer(t, "cus_a", "100", "alice", day(2024, 1, 1), 1, vo.StatusActive),
		newCustomer(t, "cus_b", "200", "bob", day(2024, 1, 3), 1, vo.StatusActive),
		newCustomer(t, "cus_c", "300", "carol", day(2024, 1, 5), 1, vo.StatusActive),
	}
}

func notifyEntries(entries []activityApp.Entry) int {
	n := 0
	for _, e := range entries {
		if e.Action == activity.ActionNotify {
			n++
		}
	}
	return n
}

func TestSendExpiring_Scenario(t *testing.T) {
	f := newDispatchFixture(t, 4,
		newCustomer(t, "cus_a", "100", "alice", day(2024, 1, 1), 1, vo.StatusActive),
		newCustomer(t, "cus_d", "400", "dave", day(2024, 1, 20), 1, vo.StatusActive),
	)

	result, err := f.uc.Execute(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalExpiring)
	assert.Equal(t, 1, result.SentCount)
	assert.NotEmpty(t, result.CycleID)

	require.Len(t, f.deliverer.calls, 1)
	call := f.deliverer.calls[0]
	assert.Equal(t, "bot-token", call.token)
	assert.Equal(t, "channel-1", call.channelID)
	assert.Equal(t, "100", call.userID)
	assert.Equal(t, "Hey alice, your Discord Nitro Basic subscription ends on 2024-02-01 (2 days left). Reply here to renew.", call.content)

	records := f.notifs.all()
	require.Len(t, records, 1)
	assert.Equal(t, notification.TypeExpiringSoon, records[0].Type())
	assert.True(t, records[0].Success())
	assert.Equal(t, result.CycleID, records[0].CycleID())
	require.NotNil(t, records[0].WindowStart())
	assert.Equal(t, day(2024, 1, 24), *records[0].WindowStart())
}

func TestSendExpiring_UrgentTemplate(t *testing.T) {
	f := newDispatchFixture(t, 1, newCustomer(t, "cus_u", "900", "uma", day(2023, 12, 31), 1, vo.StatusActive))
	f.settings.settings.NotifyBeforeHours = 48

	_, err := f.uc.Execute(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, f.deliverer.calls, 1)
	assert.Equal(t, "uma, your Discord Nitro Basic expires in 36 hours (2024-01-31). Renew now to keep your perks.", f.deliverer.calls[0].content)
}

func TestSendExpiring_DedupAcrossRuns(t *testing.T) {
	f := newDispatchFixture(t, 2, threeExpiring(t)...)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 3, first.SentCount)

	second, err := f.uc.Execute(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, second.TotalExpiring)
	assert.Equal(t, 0, second.SentCount)
	assert.Equal(t, 3, second.SkippedCount)
	assert.Len(t, f.deliverer.calls, 3)
	assert.Len(t, f.notifs.all(), 3)
}

func TestSendExpiring_DedupOnFirstDayOfWindow(t *testing.T) {
	// Ends 2024-02-06T00:00Z: 7.5 days left at now, so daysLeft truncates to 7.
	f := newDispatchFixture(t, 1, newCustomer(t, "cus_f", "500", "fay", day(2024, 1, 6), 1, vo.StatusActive))
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, first.SentCount)

	second, err := f.uc.Execute(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.SentCount)
	assert.Equal(t, 1, second.SkippedCount)

	third, err := f.uc.Execute(ctx, now.Add(20*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, third.SentCount)
	assert.Len(t, f.deliverer.calls, 1)
}

func TestSendExpiring_ContinuesAfterFailure(t *testing.T) {
	f := newDispatchFixture(t, 1, threeExpiring(t)...)
	f.deliverer.failFor = map[string]error{"200": stderrors.New("discord API error 403 (code 50007): Cannot send messages to this user")}

	result, err := f.uc.Execute(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalExpiring)
	assert.Equal(t, 2, result.SentCount)
	assert.Equal(t, 1, result.FailedCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "cus_b", result.Failures[0].CustomerID)
	assert.Equal(t, "200", result.Failures[0].DiscordID)
	assert.Contains(t, result.Failures[0].Error, "50007")

	records := f.notifs.all()
	require.Len(t, records, 3)
	failed := 0
	for _, r := range records {
		if !r.Success() {
			failed++
			assert.Equal(t, "cus_b", r.CustomerID())
			assert.NotEmpty(t, r.Error())
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 3, notifyEntries(f.recorder.snapshot()))

	// A failed attempt does not count for dedup, so the next cycle retries it.
	f.deliverer.failFor = nil
	retry, err := f.uc.Execute(context.Background(), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, retry.SentCount)
	assert.Equal(t, 2, retry.SkippedCount)
}

func TestSendExpiring_DeadlineStopsNewSends(t *testing.T) {
	f := newDispatchFixture(t, 1, threeExpiring(t)...)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.deliverer.onDeliver = func(string) { cancel() }

	result, err := f.uc.Execute(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SentCount)
	assert.Equal(t, 2, result.DeferredCount)
	assert.Equal(t, []string{"100"}, f.deliverer.userIDs())

	records := f.notifs.all()
	require.Len(t, records, 1)
	assert.True(t, records[0].Success())
	assert.Equal(t, 1, notifyEntries(f.recorder.snapshot()))
}

func TestSendExpiring_InflightCustomerIsDeferred(t *testing.T) {
	f := newDispatchFixture(t, 2, threeExpiring(t)...)
	release, ok, err := f.locks.TryAcquire(context.Background(), "cus_a", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	defer release()

	result, err := f.uc.Execute(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SentCount)
	assert.Equal(t, 1, result.DeferredCount)
	assert.Equal(t, []string{"200", "300"}, sortedStrings(f.deliverer.userIDs()))
}

func TestSendExpiring_Guards(t *testing.T) {
	noIO := struct{ customer.Repository }{}

	t.Run("inactive bot", func(t *testing.T) {
		f := newDispatchFixture(t, 1)
		f.settings.settings.IsBotActive = false
		f.settings.settings.BotToken = ""
		f.uc.selector = NewSelector(noIO, f.recorder, nil, logger.NewNopLogger())

		_, err := f.uc.Execute(context.Background(), now)
		assert.True(t, errors.IsBotInactiveError(err))
		assert.Empty(t, f.deliverer.calls)
	})

	t.Run("missing token", func(t *testing.T) {
		f := newDispatchFixture(t, 1)
		f.settings.settings.BotToken = ""
		f.uc.selector = NewSelector(noIO, f.recorder, nil, logger.NewNopLogger())

		_, err := f.uc.Execute(context.Background(), now)
		assert.True(t, errors.IsInvalidCredentialError(err))
		assert.Empty(t, f.deliverer.calls)
	})
}

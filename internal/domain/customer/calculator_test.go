package customer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestCustomer(t *testing.T, start time.Time, months int, status vo.Status) *Customer {
	t.Helper()
	c, err := ReconstructCustomer("cus_test", "123456789012345678", "alice", "",
		vo.NitroBasic, start, months, nil, "", status, start, start)
	require.NoError(t, err)
	return c
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"leap year clamp", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"non-leap clamp", date(2023, 1, 31), 1, date(2023, 2, 28)},
		{"plain month", date(2024, 1, 1), 1, date(2024, 2, 1)},
		{"year rollover", date(2024, 11, 30), 3, date(2025, 2, 28)},
		{"thirty-first into thirty", date(2024, 3, 31), 1, date(2024, 4, 30)},
		{"twelve months", date(2024, 2, 29), 12, date(2025, 2, 28)},
		{"keeps clock", time.Date(2024, 1, 31, 15, 4, 5, 0, time.UTC), 1, time.Date(2024, 2, 29, 15, 4, 5, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.months))
		})
	}
}

func TestComputeThresholds(t *testing.T) {
	// Ends 2024-02-01T00:00Z.
	c := newTestCustomer(t, date(2024, 1, 1), 1, vo.StatusActive)

	tests := []struct {
		name         string
		now          time.Time
		daysLeft     int
		expiringSoon bool
		expired      bool
	}{
		{"well before window", date(2024, 1, 10), 22, false, false},
		{"exactly N days left", date(2024, 1, 25), 7, true, false},
		{"one day left", date(2024, 1, 31), 1, true, false},
		{"partial day truncates to zero", time.Date(2024, 1, 31, 1, 0, 0, 0, time.UTC), 0, false, true},
		{"at end date", date(2024, 2, 1), 0, false, true},
		{"after end date", date(2024, 2, 4), -3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Compute(c, tt.now, 7)
			assert.Equal(t, date(2024, 2, 1), v.EndDate)
			assert.Equal(t, tt.daysLeft, v.DaysLeft)
			assert.Equal(t, tt.expiringSoon, v.IsExpiringSoon)
			assert.Equal(t, tt.expired, v.IsExpired)
		})
	}
}

func TestComputeScenario(t *testing.T) {
	c := newTestCustomer(t, date(2024, 1, 1), 1, vo.StatusActive)
	now := time.Date(2024, 1, 29, 12, 0, 0, 0, time.UTC)

	v := Compute(c, now, 7)

	assert.Equal(t, 2, v.DaysLeft)
	assert.Equal(t, 60, v.HoursLeft)
	assert.True(t, v.IsExpiringSoon)
	assert.False(t, v.IsExpired)
	assert.Equal(t, date(2024, 1, 24), v.WindowStart)
}

func TestComputeWindowStartCoversTruncatedDays(t *testing.T) {
	// Ends 2024-02-06T00:00Z.
	c := newTestCustomer(t, date(2024, 1, 6), 1, vo.StatusActive)
	now := time.Date(2024, 1, 29, 12, 0, 0, 0, time.UTC)

	v := Compute(c, now, 7)

	require.Equal(t, 7, v.DaysLeft)
	require.True(t, v.IsExpiringSoon)
	assert.False(t, now.Before(v.WindowStart))
	assert.Equal(t, date(2024, 1, 29), v.WindowStart)

	before := Compute(c, v.WindowStart.Add(-time.Second), 7)
	assert.False(t, before.IsExpiringSoon)
}

func TestComputeRespectsStoredStatus(t *testing.T) {
	now := date(2024, 1, 29)

	expired := newTestCustomer(t, date(2024, 1, 1), 1, vo.StatusExpired)
	v := Compute(expired, now, 7)
	assert.True(t, v.IsExpired)
	assert.False(t, v.IsExpiringSoon)

	cancelled := newTestCustomer(t, date(2024, 1, 1), 1, vo.StatusCancelled)
	v = Compute(cancelled, now, 7)
	assert.False(t, v.IsExpired)
	assert.False(t, v.IsExpiringSoon)
	assert.Equal(t, vo.StatusCancelled, cancelled.Status())
}

func TestNewlyExpired(t *testing.T) {
	now := date(2024, 3, 1)

	active := newTestCustomer(t, date(2024, 1, 1), 1, vo.StatusActive)
	assert.True(t, NewView(active, now, 7).IsNewlyExpired())

	alreadyExpired := newTestCustomer(t, date(2024, 1, 1), 1, vo.StatusExpired)
	assert.False(t, NewView(alreadyExpired, now, 7).IsNewlyExpired())
}

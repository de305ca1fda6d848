package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDayUTC(t *testing.T) {
	t.Cleanup(func() { _ = Init("UTC") })

	ts := time.Date(2024, 1, 29, 3, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), StartOfDayUTC(ts))

	require.NoError(t, Init("Asia/Tokyo"))
	// 03:30 UTC is 12:30 in Tokyo; the business day started at 15:00 UTC the day before.
	assert.Equal(t, time.Date(2024, 1, 28, 15, 0, 0, 0, time.UTC), StartOfDayUTC(ts))
}

func TestInitRejectsUnknownZone(t *testing.T) {
	assert.Error(t, Init("Mars/Olympus"))
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 1, 29, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, at, FixedClock(at).Now())
}

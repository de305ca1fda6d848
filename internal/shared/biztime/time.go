// Package biztime keeps storage and transport in UTC and confines the business
// timezone to computing day boundaries for reporting.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const DefaultTimezone = "UTC"

var (
	mu          sync.RWMutex
	bizLocation = time.UTC
)

// Init sets the business timezone. Empty means UTC.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load business timezone %q: %w", tz, err)
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return bizLocation
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns midnight of t's business day, expressed in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	loc := Location()
	b := t.In(loc)
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, loc).UTC()
}

func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// Clock lets use cases take "now" from the caller or from a fixed instant in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return NowUTC() }

// SystemClock returns a Clock backed by the wall clock in UTC.
func SystemClock() Clock { return systemClock{} }

// FixedClock always returns t.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c).UTC() }

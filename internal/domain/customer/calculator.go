package customer

import (
	"time"

	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
)

const day = 24 * time.Hour

// DerivedView holds the fields computed from stored dates at read time.
type DerivedView struct {
	EndDate        time.Time `json:"endDate"`
	DaysLeft       int       `json:"daysLeft"`
	HoursLeft      int       `json:"hoursLeft"`
	IsExpiringSoon bool      `json:"isExpiringSoon"`
	IsExpired      bool      `json:"isExpired"`
	// WindowStart is the earliest instant the expiring-soon predicate can hold:
	// daysLeft truncates, so it holds while endDate-now < (N+1) days.
	WindowStart time.Time `json:"-"`
}

// View pairs a customer with its derived fields for one instant.
type View struct {
	Customer *Customer
	DerivedView
}

// AddMonths adds n calendar months to t, clamping the day to the last day of
// the target month (Jan 31 + 1 month is Feb 29 in 2024 and Feb 28 in 2023).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month(), t.Location()); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	return time.Date(target.Year(), target.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// Compute derives the view of c at now. It never touches stored state.
// daysLeft and hoursLeft are truncated toward zero and go negative after expiry.
func Compute(c *Customer, now time.Time, notifyBeforeDays int) DerivedView {
	end := c.EndDate()
	remaining := end.Sub(now)
	daysLeft := int(remaining / day)

	return DerivedView{
		EndDate:        end,
		DaysLeft:       daysLeft,
		HoursLeft:      int(remaining / time.Hour),
		IsExpiringSoon: c.status == vo.StatusActive && daysLeft > 0 && daysLeft <= notifyBeforeDays,
		IsExpired:      daysLeft <= 0 || c.status == vo.StatusExpired,
		WindowStart:    end.Add(-time.Duration(notifyBeforeDays+1) * day),
	}
}

// NewView computes the derived fields of c at now.
func NewView(c *Customer, now time.Time, notifyBeforeDays int) View {
	return View{Customer: c, DerivedView: Compute(c, now, notifyBeforeDays)}
}

// IsNewlyExpired reports a customer whose dates have run out while the stored
// status still says ACTIVE.
func (v View) IsNewlyExpired() bool {
	return v.Customer.status == vo.StatusActive && v.DaysLeft <= 0
}

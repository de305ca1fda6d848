package valueobjects

import "fmt"

// Status is the stored lifecycle state of a customer subscription.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

var validStatuses = map[Status]bool{
	StatusActive:    true,
	StatusExpired:   true,
	StatusCancelled: true,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return st, nil
}

// CanTransitionTo reports whether an admin edit or the expiry pass may move s to target.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return true
	}
	switch s {
	case StatusActive:
		return target == StatusExpired || target == StatusCancelled
	case StatusExpired, StatusCancelled:
		return target == StatusActive
	}
	return false
}

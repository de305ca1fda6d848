package notification

import (
	"fmt"
	"time"

	"github.com/nitrodesk/nitrodesk/internal/shared/id"
)

type Type string

const (
	TypeExpiringSoon Type = "EXPIRING_SOON"
	TypeExpired      Type = "EXPIRED"
	TypeRenewed      Type = "RENEWED"
	TypeManual       Type = "MANUAL"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeExpiringSoon, TypeExpired, TypeRenewed, TypeManual:
		return true
	}
	return false
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", s)
	}
	return t, nil
}

// Record is the immutable outcome of one delivery attempt. CustomerID is a weak
// reference: the record outlives the customer, so the Discord identity is
// snapshotted at send time.
type Record struct {
	id              string
	customerID      string
	discordID       string
	discordUsername string
	notifType       Type
	message         string
	sentAt          time.Time
	success         bool
	errMessage      string
	cycleID         string
	windowStart     *time.Time
}

// Attempt describes a finished delivery.
type Attempt struct {
	CustomerID      string
	DiscordID       string
	DiscordUsername string
	Type            Type
	Message         string
	SentAt          time.Time
	Err             error
	CycleID         string
	WindowStart     *time.Time
}

func NewRecord(a Attempt) (*Record, error) {
	if a.CustomerID == "" {
		return nil, fmt.Errorf("customer id is required")
	}
	if !a.Type.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", a.Type)
	}

	r := &Record{
		id:              id.NewNotificationID(),
		customerID:      a.CustomerID,
		discordID:       a.DiscordID,
		discordUsername: a.DiscordUsername,
		notifType:       a.Type,
		message:         a.Message,
		sentAt:          a.SentAt.UTC(),
		success:         a.Err == nil,
		cycleID:         a.CycleID,
		windowStart:     a.WindowStart,
	}
	if a.Err != nil {
		r.errMessage = a.Err.Error()
	}
	return r, nil
}

func ReconstructRecord(
	id, customerID, discordID, discordUsername string,
	t Type,
	message string,
	sentAt time.Time,
	success bool,
	errMessage, cycleID string,
	windowStart *time.Time,
) *Record {
	return &Record{
		id:              id,
		customerID:      customerID,
		discordID:       discordID,
		discordUsername: discordUsername,
		notifType:       t,
		message:         message,
		sentAt:          sentAt,
		success:         success,
		errMessage:      errMessage,
		cycleID:         cycleID,
		windowStart:     windowStart,
	}
}

func (r *Record) ID() string              { return r.id }
func (r *Record) CustomerID() string      { return r.customerID }
func (r *Record) DiscordID() string       { return r.discordID }
func (r *Record) DiscordUsername() string { return r.discordUsername }
func (r *Record) Type() Type              { return r.notifType }
func (r *Record) Message() string         { return r.message }
func (r *Record) SentAt() time.Time       { return r.sentAt }
func (r *Record) Success() bool           { return r.success }
func (r *Record) Error() string           { return r.errMessage }
func (r *Record) CycleID() string         { return r.cycleID }
func (r *Record) WindowStart() *time.Time { return r.windowStart }

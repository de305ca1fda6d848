package notification

import (
	"context"
	"time"
)

// Repository stores delivery history. Records are never updated or deleted.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	// HasSuccessfulSince reports whether customerID already received a
	// successful notification of type t at or after since.
	HasSuccessfulSince(ctx context.Context, customerID string, t Type, since time.Time) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Record, error)
	// RecentByCustomers returns up to perCustomer newest records for each id.
	RecentByCustomers(ctx context.Context, customerIDs []string, perCustomer int) (map[string][]*Record, error)
	CountSuccessfulSince(ctx context.Context, since time.Time) (int64, error)
}

type Filter struct {
	CustomerID string
	Type       *Type
	Success    *bool
	Limit      int
}

package customer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
)

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	// GetByID returns nil, nil when no customer has the id.
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByDiscordID(ctx context.Context, discordID string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]*Customer, int64, error)

	// FindActiveStartedBefore is the candidate scan for the eligibility selector.
	FindActiveStartedBefore(ctx context.Context, before time.Time) ([]*Customer, error)
	// MarkExpiredIfActive sets status EXPIRED only while the row is still ACTIVE
	// and reports whether it changed the row.
	MarkExpiredIfActive(ctx context.Context, id string, at time.Time) (bool, error)

	CountByStatus(ctx context.Context) (map[vo.Status]int64, error)
	AggregateByNitroType(ctx context.Context) ([]NitroTypeAggregate, error)
}

type Filter struct {
	Status *vo.Status
	// Search matches a substring of the username or the discord id.
	Search   string
	Page     int
	PageSize int
}

type NitroTypeAggregate struct {
	NitroType vo.NitroType
	Count     int64
	Revenue   decimal.Decimal
}

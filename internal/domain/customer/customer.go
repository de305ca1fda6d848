package customer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/shared/id"
)

// Customer is a resold Nitro subscription owned by one Discord account.
// Only the stored fields live here; endDate and friends come from Compute.
type Customer struct {
	id              string
	discordID       string
	discordUsername string
	discordAvatar   string
	nitroType       vo.NitroType
	startDate       time.Time
	durationMonths  int
	price           *decimal.Decimal
	notes           string
	status          vo.Status
	createdAt       time.Time
	updatedAt       time.Time
}

// CreateParams carries the admin input for a new customer.
type CreateParams struct {
	DiscordID       string
	DiscordUsername string
	DiscordAvatar   string
	NitroType       vo.NitroType
	StartDate       time.Time
	DurationMonths  int
	Price           *decimal.Decimal
	Notes           string
}

func NewCustomer(p CreateParams, now time.Time) (*Customer, error) {
	if strings.TrimSpace(p.DiscordID) == "" {
		return nil, fmt.Errorf("discord id is required")
	}
	if !p.NitroType.IsValid() {
		return nil, fmt.Errorf("invalid nitro type: %s", p.NitroType)
	}
	if p.DurationMonths < 1 {
		return nil, ErrInvalidDuration
	}
	if p.Price != nil && p.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if p.StartDate.IsZero() {
		p.StartDate = now
	}

	return &Customer{
		id:              id.NewCustomerID(),
		discordID:       strings.TrimSpace(p.DiscordID),
		discordUsername: strings.TrimSpace(p.DiscordUsername),
		discordAvatar:   p.DiscordAvatar,
		nitroType:       p.NitroType,
		startDate:       p.StartDate.UTC(),
		durationMonths:  p.DurationMonths,
		price:           p.Price,
		notes:           p.Notes,
		status:          vo.StatusActive,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructCustomer rebuilds a customer from persistence without generating ids.
func ReconstructCustomer(
	id, discordID, discordUsername, discordAvatar string,
	nitroType vo.NitroType,
	startDate time.Time,
	durationMonths int,
	price *decimal.Decimal,
	notes string,
	status vo.Status,
	createdAt, updatedAt time.Time,
) (*Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("customer id cannot be empty")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid customer status: %s", status)
	}

	return &Customer{
		id:              id,
		discordID:       discordID,
		discordUsername: discordUsername,
		discordAvatar:   discordAvatar,
		nitroType:       nitroType,
		startDate:       startDate.UTC(),
		durationMonths:  durationMonths,
		price:           price,
		notes:           notes,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (c *Customer) ID() string              { return c.id }
func (c *Customer) DiscordID() string       { return c.discordID }
func (c *Customer) DiscordUsername() string { return c.discordUsername }
func (c *Customer) DiscordAvatar() string   { return c.discordAvatar }
func (c *Customer) NitroType() vo.NitroType { return c.nitroType }
func (c *Customer) StartDate() time.Time    { return c.startDate }
func (c *Customer) DurationMonths() int     { return c.durationMonths }
func (c *Customer) Price() *decimal.Decimal { return c.price }
func (c *Customer) Notes() string           { return c.notes }
func (c *Customer) Status() vo.Status       { return c.status }
func (c *Customer) CreatedAt() time.Time    { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time    { return c.updatedAt }
func (c *Customer) EndDate() time.Time      { return AddMonths(c.startDate, c.durationMonths) }

// DisplayName is the username when known, otherwise a mention of the Discord id.
func (c *Customer) DisplayName() string {
	if c.discordUsername != "" {
		return c.discordUsername
	}
	return "<@" + c.discordID + ">"
}

// Patch lists the admin-editable fields; nil means "leave unchanged".
type Patch struct {
	DiscordID       *string
	DiscordUsername *string
	DiscordAvatar   *string
	NitroType       *vo.NitroType
	StartDate       *time.Time
	DurationMonths  *int
	Price           *decimal.Decimal
	ClearPrice      bool
	Notes           *string
	Status          *vo.Status
}

// IsEmpty reports whether p would change nothing.
func (p Patch) IsEmpty() bool {
	return p.DiscordID == nil && p.DiscordUsername == nil && p.DiscordAvatar == nil &&
		p.NitroType == nil && p.StartDate == nil && p.DurationMonths == nil &&
		p.Price == nil && !p.ClearPrice && p.Notes == nil && p.Status == nil
}

// Apply validates the whole patch before mutating anything.
func (c *Customer) Apply(p Patch, now time.Time) error {
	if p.DiscordID != nil && strings.TrimSpace(*p.DiscordID) == "" {
		return fmt.Errorf("discord id cannot be empty")
	}
	if p.NitroType != nil && !p.NitroType.IsValid() {
		return fmt.Errorf("invalid nitro type: %s", *p.NitroType)
	}
	if p.DurationMonths != nil && *p.DurationMonths < 1 {
		return ErrInvalidDuration
	}
	if p.Price != nil && p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Status != nil && !c.status.CanTransitionTo(*p.Status) {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, c.status, *p.Status)
	}

	if p.DiscordID != nil {
		c.discordID = strings.TrimSpace(*p.DiscordID)
	}
	if p.DiscordUsername != nil {
		c.discordUsername = strings.TrimSpace(*p.DiscordUsername)
	}
	if p.DiscordAvatar != nil {
		c.discordAvatar = *p.DiscordAvatar
	}
	if p.NitroType != nil {
		c.nitroType = *p.NitroType
	}
	if p.StartDate != nil {
		c.startDate = p.StartDate.UTC()
	}
	if p.DurationMonths != nil {
		c.durationMonths = *p.DurationMonths
	}
	switch {
	case p.ClearPrice:
		c.price = nil
	case p.Price != nil:
		price := *p.Price
		c.price = &price
	}
	if p.Notes != nil {
		c.notes = *p.Notes
	}
	if p.Status != nil {
		c.status = *p.Status
	}
	c.updatedAt = now
	return nil
}

// Renew extends the subscription by months. A subscription that is still
// running keeps its start date; a lapsed one restarts at now.
func (c *Customer) Renew(months int, now time.Time) error {
	if months < 1 {
		return ErrInvalidDuration
	}
	if c.EndDate().After(now) && c.status != vo.StatusCancelled {
		c.durationMonths += months
	} else {
		c.startDate = now.UTC()
		c.durationMonths = months
	}
	c.status = vo.StatusActive
	c.updatedAt = now
	return nil
}

package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
)

// dateLayouts are the accepted startDate formats, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate accepts RFC 3339 or a bare YYYY-MM-DD (read as UTC midnight).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("startDate must be YYYY-MM-DD or RFC 3339, got %q", s)
}

type CreateCustomerRequest struct {
	DiscordID       string           `json:"discordId" validate:"required,max=64"`
	DiscordUsername string           `json:"discordUsername" validate:"max=100"`
	DiscordAvatar   string           `json:"discordAvatar" validate:"max=255"`
	NitroType       string           `json:"nitroType" validate:"required,oneof=CLASSIC BASIC PREMIUM"`
	StartDate       string           `json:"startDate"`
	DurationMonths  int              `json:"durationMonths" validate:"required,min=1,max=120"`
	Price           *decimal.Decimal `json:"price"`
	Notes           string           `json:"notes" validate:"max=2000"`
}

// UpdateCustomerRequest is a partial update; ID may come from the path or the body.
type UpdateCustomerRequest struct {
	ID              string           `json:"id"`
	DiscordID       *string          `json:"discordId" validate:"omitempty,max=64"`
	DiscordUsername *string          `json:"discordUsername" validate:"omitempty,max=100"`
	DiscordAvatar   *string          `json:"discordAvatar" validate:"omitempty,max=255"`
	NitroType       *string          `json:"nitroType" validate:"omitempty,oneof=CLASSIC BASIC PREMIUM"`
	StartDate       *string          `json:"startDate"`
	DurationMonths  *int             `json:"durationMonths" validate:"omitempty,min=1,max=120"`
	Price           *decimal.Decimal `json:"price"`
	ClearPrice      bool             `json:"clearPrice"`
	Notes           *string          `json:"notes" validate:"omitempty,max=2000"`
	Status          *string          `json:"status" validate:"omitempty,oneof=ACTIVE EXPIRED CANCELLED"`
}

// ToPatch converts the request; it fails only on an unparseable date.
func (r UpdateCustomerRequest) ToPatch() (customer.Patch, error) {
	p := customer.Patch{
		DiscordID:       r.DiscordID,
		DiscordUsername: r.DiscordUsername,
		DiscordAvatar:   r.DiscordAvatar,
		DurationMonths:  r.DurationMonths,
		Price:           r.Price,
		ClearPrice:      r.ClearPrice,
		Notes:           r.Notes,
	}
	if r.NitroType != nil {
		n := vo.NitroType(*r.NitroType)
		p.NitroType = &n
	}
	if r.Status != nil {
		s := vo.Status(*r.Status)
		p.Status = &s
	}
	if r.StartDate != nil {
		t, err := ParseDate(*r.StartDate)
		if err != nil {
			return customer.Patch{}, err
		}
		p.StartDate = &t
	}
	return p, nil
}

type RenewCustomerRequest struct {
	Months int `json:"months" validate:"required,min=1,max=120"`
}

type ListCustomersRequest struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// NotificationSummary is the short history shown next to a customer.
type NotificationSummary struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	SentAt  time.Time `json:"sentAt"`
	Success bool      `json:"success"`
}

type CustomerResponse struct {
	ID              string                `json:"id"`
	DiscordID       string                `json:"discordId"`
	DiscordUsername string                `json:"discordUsername,omitempty"`
	DiscordAvatar   string                `json:"discordAvatar,omitempty"`
	NitroType       string                `json:"nitroType"`
	StartDate       time.Time             `json:"startDate"`
	EndDate         time.Time             `json:"endDate"`
	DurationMonths  int                   `json:"durationMonths"`
	Price           *decimal.Decimal      `json:"price"`
	Notes           string                `json:"notes,omitempty"`
	Status          string                `json:"status"`
	DaysLeft        int                   `json:"daysLeft"`
	HoursLeft       int                   `json:"hoursLeft"`
	IsExpiringSoon  bool                  `json:"isExpiringSoon"`
	IsExpired       bool                  `json:"isExpired"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	Notifications   []NotificationSummary `json:"notifications"`
}

type ListCustomersResponse struct {
	Customers []*CustomerResponse
	Total     int64
	Page      int
	PageSize  int
}

func ToCustomerResponse(v customer.View, recent []*notification.Record) *CustomerResponse {
	c := v.Customer
	resp := &CustomerResponse{
		ID:              c.ID(),
		DiscordID:       c.DiscordID(),
		DiscordUsername: c.DiscordUsername(),
		DiscordAvatar:   c.DiscordAvatar(),
		NitroType:       c.NitroType().String(),
		StartDate:       c.StartDate(),
		EndDate:         v.EndDate,
		DurationMonths:  c.DurationMonths(),
		Price:           c.Price(),
		Notes:           c.Notes(),
		Status:          c.Status().String(),
		DaysLeft:        v.DaysLeft,
		HoursLeft:       v.HoursLeft,
		IsExpiringSoon:  v.IsExpiringSoon,
		IsExpired:       v.IsExpired,
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
		Notifications:   make([]NotificationSummary, 0, len(recent)),
	}
	for _, r := range recent {
		resp.Notifications = append(resp.Notifications, NotificationSummary{
			ID:      r.ID(),
			Type:    string(r.Type()),
			SentAt:  r.SentAt(),
			Success: r.Success(),
		})
	}
	return resp
}

package dto

import (
	"time"

	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
)

// Dispatch actions accepted by PUT /notifications.
const (
	ActionSendExpiring = "send_expiring_notifications"
	ActionMarkExpired  = "mark_expired"
)

type ActionRequest struct {
	Action string `json:"action" binding:"required,oneof=send_expiring_notifications mark_expired"`
}

type SendManualRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	Message    string `json:"message" binding:"max=1500"`
}

type ListNotificationsRequest struct {
	CustomerID string `form:"customerId"`
	Type       string `form:"type" binding:"omitempty,oneof=EXPIRING_SOON EXPIRED RENEWED MANUAL"`
	Success    *bool  `form:"success"`
	Limit      int    `form:"limit"`
}

type DispatchFailure struct {
	CustomerID string `json:"customerId"`
	DiscordID  string `json:"discordId"`
	Error      string `json:"error"`
}

// DispatchResult summarises one expiring-notification cycle.
type DispatchResult struct {
	CycleID       string            `json:"cycleId"`
	SentCount     int               `json:"sentCount"`
	TotalExpiring int               `json:"totalExpiring"`
	FailedCount   int               `json:"failedCount"`
	SkippedCount  int               `json:"skippedCount"`
	DeferredCount int               `json:"deferredCount"`
	Failures      []DispatchFailure `json:"failures"`
}

type MarkExpiredResult struct {
	UpdatedCount int `json:"updatedCount"`
	// NotifiedCount is the number of EXPIRED notices delivered, when enabled.
	NotifiedCount int `json:"notifiedCount"`
}

type CustomerRef struct {
	DiscordID       string `json:"discordId"`
	DiscordUsername string `json:"discordUsername,omitempty"`
}

type NotificationResponse struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customerId"`
	Type       string      `json:"type"`
	Message    string      `json:"message"`
	SentAt     time.Time   `json:"sentAt"`
	Success    bool        `json:"success"`
	Error      string      `json:"error,omitempty"`
	CycleID    string      `json:"cycleId,omitempty"`
	Customer   CustomerRef `json:"customer"`
}

// ExpiringCustomer is one row of the expiring-soon list.
type ExpiringCustomer struct {
	ID              string    `json:"id"`
	DiscordID       string    `json:"discordId"`
	DiscordUsername string    `json:"discordUsername,omitempty"`
	NitroType       string    `json:"nitroType"`
	EndDate         time.Time `json:"endDate"`
	DaysLeft        int       `json:"daysLeft"`
	HoursLeft       int       `json:"hoursLeft"`
}

func ToNotificationResponse(r *notification.Record) NotificationResponse {
	return NotificationResponse{
		ID:         r.ID(),
		CustomerID: r.CustomerID(),
		Type:       string(r.Type()),
		Message:    r.Message(),
		SentAt:     r.SentAt(),
		Success:    r.Success(),
		Error:      r.Error(),
		CycleID:    r.CycleID(),
		Customer: CustomerRef{
			DiscordID:       r.DiscordID(),
			DiscordUsername: r.DiscordUsername(),
		},
	}
}

func ToNotificationResponses(records []*notification.Record) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToNotificationResponse(r))
	}
	return out
}

func ToExpiringCustomers(views []customer.View) []ExpiringCustomer {
	out := make([]ExpiringCustomer, 0, len(views))
	for _, v := range views {
		out = append(out, ExpiringCustomer{
			ID:              v.Customer.ID(),
			DiscordID:       v.Customer.DiscordID(),
			DiscordUsername: v.Customer.DiscordUsername(),
			NitroType:       v.Customer.NitroType().String(),
			EndDate:         v.EndDate,
			DaysLeft:        v.DaysLeft,
			HoursLeft:       v.HoursLeft,
		})
	}
	return out
}

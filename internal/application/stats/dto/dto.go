package dto

import (
	"github.com/shopspring/decimal"

	notificationDto "github.com/nitrodesk/nitrodesk/internal/application/notification/dto"
)

// StatsResponse is the dashboard summary.
type StatsResponse struct {
	TotalCustomers         int64                              `json:"totalCustomers"`
	ActiveCount            int64                              `json:"activeCount"`
	ExpiredCount           int64                              `json:"expiredCount"`
	CancelledCount         int64                              `json:"cancelledCount"`
	ExpiringSoonCount      int                                `json:"expiringSoonCount"`
	ExpiringSoonList       []notificationDto.ExpiringCustomer `json:"expiringSoonList"`
	TotalRevenue           decimal.Decimal                    `json:"totalRevenue" swaggertype:"string"`
	RevenueByNitroType     map[string]decimal.Decimal         `json:"revenueByNitroType"`
	CountByNitroType       map[string]int64                   `json:"countByNitroType"`
	NotificationsSentToday int64                              `json:"notificationsSentToday"`
}

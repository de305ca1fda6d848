package handlers

import (
	"context"
	"time"

	notificationDto "github.com/nitrodesk/nitrodesk/internal/application/notification/dto"
)

type notificationService interface {
	Now() time.Time
	SendExpiringNotifications(ctx context.Context, now time.Time) (*notificationDto.DispatchResult, error)
	MarkExpired(ctx context.Context, now time.Time, actorID string) (*notificationDto.MarkExpiredResult, error)
	SendManualNotification(ctx context.Context, customerID, message, actorID string) (*notificationDto.NotificationResponse, error)
	ListNotifications(ctx context.Context, req notificationDto.ListNotificationsRequest) ([]notificationDto.NotificationResponse, error)
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notificationDto "github.com/nitrodesk/nitrodesk/internal/application/notification/dto"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/http/handlers/testutil"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

type mockNotificationService struct {
	now            time.Time
	sendExpiringFn func(ctx context.Context, now time.Time) (*notificationDto.DispatchResult, error)
	markExpiredFn  func(ctx context.Context, now time.Time, actorID string) (*notificationDto.MarkExpiredResult, error)
	sendManualFn   func(ctx context.Context, customerID, message, actorID string) (*notificationDto.NotificationResponse, error)
	listFn         func(ctx context.Context, req notificationDto.ListNotificationsRequest) ([]notificationDto.NotificationResponse, error)
}

func (m *mockNotificationService) Now() time.Time { return m.now }

func (m *mockNotificationService) SendExpiringNotifications(ctx context.Context, now time.Time) (*notificationDto.DispatchResult, error) {
	return m.sendExpiringFn(ctx, now)
}

func (m *mockNotificationService) MarkExpired(ctx context.Context, now time.Time, actorID string) (*notificationDto.MarkExpiredResult, error) {
	return m.markExpiredFn(ctx, now, actorID)
}

func (m *mockNotificationService) SendManualNotification(ctx context.Context, customerID, message, actorID string) (*notificationDto.NotificationResponse, error) {
	return m.sendManualFn(ctx, customerID, message, actorID)
}

func (m *mockNotificationService) ListNotifications(ctx context.Context, req notificationDto.ListNotificationsRequest) ([]notificationDto.NotificationResponse, error) {
	return m.listFn(ctx, req)
}

var handlerNow = time.Date(2024, 1, 29, 12, 0, 0, 0, time.UTC)

func TestNotificationHandler_RunAction_SendExpiring(t *testing.T) {
	var gotNow time.Time
	handler := NewNotificationHandler(&mockNotificationService{
		now: handlerNow,
		sendExpiringFn: func(_ context.Context, now time.Time) (*notificationDto.DispatchResult, error) {
			gotNow = now
			return &notificationDto.DispatchResult{CycleID: "c1", SentCount: 2, TotalExpiring: 3, FailedCount: 1}, nil
		},
	}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/notifications", map[string]string{"action": "send_expiring_notifications"})
	handler.RunAction(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, handlerNow, gotNow)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.EqualValues(t, 2, data["sentCount"])
	assert.EqualValues(t, 3, data["totalExpiring"])
}

func TestNotificationHandler_RunAction_MarkExpired(t *testing.T) {
	var gotActor string
	handler := NewNotificationHandler(&mockNotificationService{
		now: handlerNow,
		markExpiredFn: func(_ context.Context, _ time.Time, actorID string) (*notificationDto.MarkExpiredResult, error) {
			gotActor = actorID
			return &notificationDto.MarkExpiredResult{UpdatedCount: 4}, nil
		},
	}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/notifications", map[string]string{"action": "mark_expired"})
	testutil.SetActor(c, "admin")
	handler.RunAction(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", gotActor)
	assert.Contains(t, w.Body.String(), `"updatedCount":4`)
}

func TestNotificationHandler_RunAction_UnknownAction(t *testing.T) {
	handler := NewNotificationHandler(&mockNotificationService{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/notifications", map[string]string{"action": "explode"})
	handler.RunAction(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandler_RunAction_BotInactive(t *testing.T) {
	handler := NewNotificationHandler(&mockNotificationService{
		sendExpiringFn: func(context.Context, time.Time) (*notificationDto.DispatchResult, error) {
			return nil, errors.NewBotInactiveError("the Discord bot is not active")
		},
	}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/notifications", map[string]string{"action": "send_expiring_notifications"})
	handler.RunAction(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "bot_inactive", resp.Code)
}

func TestNotificationHandler_SendManual(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := NewNotificationHandler(&mockNotificationService{
			sendManualFn: func(_ context.Context, customerID, message, _ string) (*notificationDto.NotificationResponse, error) {
				return &notificationDto.NotificationResponse{ID: "n1", CustomerID: customerID, Message: message, Success: true, Type: "MANUAL"}, nil
			},
		}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/notifications", map[string]string{"customerId": "cus_1", "message": "hi"})
		handler.SendManual(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"MANUAL"`)
	})

	t.Run("missing customer id", func(t *testing.T) {
		handler := NewNotificationHandler(&mockNotificationService{}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/notifications", map[string]string{"message": "hi"})
		handler.SendManual(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delivery failure", func(t *testing.T) {
		handler := NewNotificationHandler(&mockNotificationService{
			sendManualFn: func(context.Context, string, string, string) (*notificationDto.NotificationResponse, error) {
				return nil, errors.NewDeliveryError("failed to deliver notification", "discord API error 403")
			},
		}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/notifications", map[string]string{"customerId": "cus_1"})
		handler.SendManual(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestNotificationHandler_ListNotifications(t *testing.T) {
	var gotReq notificationDto.ListNotificationsRequest
	handler := NewNotificationHandler(&mockNotificationService{
		listFn: func(_ context.Context, req notificationDto.ListNotificationsRequest) ([]notificationDto.NotificationResponse, error) {
			gotReq = req
			return []notificationDto.NotificationResponse{{ID: "n1", Customer: notificationDto.CustomerRef{DiscordID: "100", DiscordUsername: "alice"}}}, nil
		},
	}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/notifications", nil)
	testutil.SetQueryParams(c, map[string]string{"type": "MANUAL", "success": "false", "limit": "10"})
	handler.ListNotifications(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MANUAL", gotReq.Type)
	require.NotNil(t, gotReq.Success)
	assert.False(t, *gotReq.Success)
	assert.Equal(t, 10, gotReq.Limit)
	assert.Contains(t, w.Body.String(), `"discordUsername":"alice"`)
}

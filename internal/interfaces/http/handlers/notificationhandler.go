package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	notificationDto "github.com/nitrodesk/nitrodesk/internal/application/notification/dto"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

type NotificationHandler struct {
	service notificationService
	logger  logger.Interface
}

func NewNotificationHandler(service notificationService, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{service: service, logger: logger}
}

// ListNotifications godoc
// @Summary List notification history
// @Tags notifications
// @Produce json
// @Param customerId query string false "Customer ID"
// @Param type query string false "EXPIRING_SOON, EXPIRED, RENEWED or MANUAL"
// @Param success query bool false "Delivery outcome"
// @Param limit query int false "Max rows (default 50, max 500)"
// @Success 200 {object} utils.APIResponse{data=[]notificationDto.NotificationResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var req notificationDto.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.ListNotifications(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RunAction godoc
// @Summary Run a notification batch
// @Description send_expiring_notifications runs one reminder cycle; mark_expired moves lapsed ACTIVE customers to EXPIRED.
// @Tags notifications
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Admin performing the change"
// @Param request body notificationDto.ActionRequest true "Action"
// @Success 200 {object} utils.APIResponse{data=notificationDto.DispatchResult} "send_expiring_notifications"
// @Success 200 {object} utils.APIResponse{data=notificationDto.MarkExpiredResult} "mark_expired"
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse "Bot inactive"
// @Failure 422 {object} utils.APIResponse "Bot token missing"
// @Failure 429 {object} utils.APIResponse
// @Router /notifications [put]
func (h *NotificationHandler) RunAction(c *gin.Context) {
	var req notificationDto.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	now := h.service.Now()

	switch req.Action {
	case notificationDto.ActionSendExpiring:
		result, err := h.service.SendExpiringNotifications(ctx, now)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Expiring notifications processed", result)
	case notificationDto.ActionMarkExpired:
		result, err := h.service.MarkExpired(ctx, now, actorID(c))
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Expired customers updated", result)
	}
}

// SendManual godoc
// @Summary Send a manual notification
// @Description Delivers the manual template to one customer. Failed deliveries are recorded and reported as 502.
// @Tags notifications
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Admin performing the change"
// @Param request body notificationDto.SendManualRequest true "Recipient and optional message"
// @Success 200 {object} utils.APIResponse{data=notificationDto.NotificationResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse "Bot inactive"
// @Failure 502 {object} utils.APIResponse "Discord rejected the message"
// @Router /notifications [post]
func (h *NotificationHandler) SendManual(c *gin.Context) {
	var req notificationDto.SendManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.SendManualNotification(c.Request.Context(), req.CustomerID, req.Message, actorID(c))
	if err != nil {
		h.logger.Warnw("manual notification failed", "customer_id", req.CustomerID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Notification sent", result)
}

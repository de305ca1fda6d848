package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	activityDto "github.com/nitrodesk/nitrodesk/internal/application/activity/dto"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

type activityLister interface {
	List(ctx context.Context, req activityDto.ListActivitiesRequest) ([]activityDto.ActivityResponse, error)
}

type ActivityHandler struct {
	lister activityLister
}

func NewActivityHandler(lister activityLister) *ActivityHandler {
	return &ActivityHandler{lister: lister}
}

// ListActivities godoc
// @Summary List the activity log
// @Tags activities
// @Produce json
// @Param action query string false "CREATE, UPDATE, DELETE or NOTIFY"
// @Param entityType query string false "CUSTOMER, SETTINGS or NOTIFICATION"
// @Param entityId query string false "Entity ID"
// @Param limit query int false "Max rows (default 50, max 500)"
// @Success 200 {object} utils.APIResponse{data=[]activityDto.ActivityResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	var req activityDto.ListActivitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.lister.List(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

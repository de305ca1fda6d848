package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	statsDto "github.com/nitrodesk/nitrodesk/internal/application/stats/dto"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

type statsService interface {
	GetStats(ctx context.Context) (*statsDto.StatsResponse, error)
}

type StatsHandler struct {
	service statsService
}

func NewStatsHandler(service statsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStats godoc
// @Summary Dashboard summary
// @Tags stats
// @Produce json
// @Success 200 {object} utils.APIResponse{data=statsDto.StatsResponse}
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	result, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

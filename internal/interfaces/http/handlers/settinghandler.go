package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	settingDto "github.com/nitrodesk/nitrodesk/internal/application/setting/dto"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

type settingService interface {
	Get(ctx context.Context) (*settingDto.SettingsResponse, error)
	Save(ctx context.Context, req settingDto.UpdateSettingsRequest, actorID string) (*settingDto.SettingsResponse, error)
	VerifyCredential(ctx context.Context, token string) (*settingDto.VerifyCredentialResponse, error)
}

type SettingHandler struct {
	service settingService
	logger  logger.Interface
}

func NewSettingHandler(service settingService, logger logger.Interface) *SettingHandler {
	return &SettingHandler{service: service, logger: logger}
}

// GetSettings godoc
// @Summary Get Discord settings
// @Description The bot token is masked to its last four characters.
// @Tags settings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=settingDto.SettingsResponse}
// @Router /settings [get]
func (h *SettingHandler) GetSettings(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateSettings godoc
// @Summary Update Discord settings
// @Description Partial update. An empty discordBotToken keeps the stored token; clearBotToken erases it.
// @Tags settings
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Admin performing the change"
// @Param request body settingDto.UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=settingDto.SettingsResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /settings [put]
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req settingDto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// The body may carry a token; never log it.
		h.logger.Warnw("invalid request body for update settings")
		respondBindError(c, err)
		return
	}

	result, err := h.service.Save(c.Request.Context(), req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Settings saved successfully", result)
}

// VerifyCredential godoc
// @Summary Verify a bot token
// @Description Checks the given token, or the stored one when the body is empty, against Discord.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body settingDto.VerifyCredentialRequest false "Token to check"
// @Success 200 {object} utils.APIResponse{data=settingDto.VerifyCredentialResponse}
// @Failure 422 {object} utils.APIResponse "Token rejected or missing"
// @Failure 502 {object} utils.APIResponse "Discord unreachable"
// @Failure 429 {object} utils.APIResponse
// @Router /settings [post]
func (h *SettingHandler) VerifyCredential(c *gin.Context) {
	var req settingDto.VerifyCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	result, err := h.service.VerifyCredential(c.Request.Context(), req.DiscordBotToken)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Bot credential is valid", result)
}

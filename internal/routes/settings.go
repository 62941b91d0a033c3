package routes

import (
	"net/http"

	"Paydue/internal/contracts"
	"Paydue/internal/domain/settings"
	appErrors "Paydue/internal/errors"

	"github.com/gin-gonic/gin"
)

// GetSettings godoc
// @Summary      Configuracoes de lembrete
// @Tags         settings
// @Produce      json
// @Success      200  {object}  contracts.SettingsResponse
// @Router       /settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()
	current, err := h.SettingsService.Get(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.SettingsResponse{Settings: current})
}

// UpdateSettings godoc
// @Summary      Atualiza as configuracoes de lembrete
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      contracts.SettingsUpdateRequest  true  "Configuracoes"
// @Success      200   {object}  contracts.SettingsUpdateResponse
// @Failure      400   {object}  contracts.ErrorResponse
// @Router       /settings [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	var body contracts.SettingsUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	updated, err := h.SettingsService.Update(ctx, &settings.UpdateRequest{
		NotificationsEnabled:      body.NotificationsEnabled,
		DefaultReminderDaysBefore: body.DefaultReminderDaysBefore,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.SettingsUpdateResponse{
		Message:  "Configuracoes atualizadas com sucesso",
		Settings: updated,
	})
}

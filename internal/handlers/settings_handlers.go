package handlers

import (
	"net/http"

	"github.com/epeers/networth/internal/models"
	"github.com/epeers/networth/internal/services"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles the per-owner settings record
type SettingsHandler struct {
	settingsSvc *services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsSvc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsSvc: settingsSvc,
	}
}

// Get handles GET /settings
// @Summary Get settings
// @Description Returns the owner's settings, creating the defaults on first access.
// @Tags settings
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Success 200 {object} models.Settings
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	settings, err := h.settingsSvc.GetSettings(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Update handles PUT /settings
// @Summary Update settings
// @Description Rates are fractions in (0, 1]; allocation targets are percentages keyed by bucket name.
// @Tags settings
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Owner ID"
// @Param request body models.UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} models.Settings
// @Failure 400 {object} models.ErrorResponse
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	settings, err := h.settingsSvc.UpdateSettings(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

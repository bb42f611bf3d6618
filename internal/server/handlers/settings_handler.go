package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petokpredict/server/internal/domain/models"
	"github.com/petokpredict/server/internal/service/calibration"
	"github.com/petokpredict/server/internal/service/dashboard"
)

// SettingsHandler serves the advanced calibration record.
type SettingsHandler struct {
	calibration *calibration.Service
	dashboard   *dashboard.Service
	logger      *zap.Logger
}

// NewSettingsHandler constructs the HTTP handler adapter.
func NewSettingsHandler(cal *calibration.Service, dashboardSvc *dashboard.Service, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{calibration: cal, dashboard: dashboardSvc, logger: logger}
}

// Get returns the current calibration record.
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.calibration.Settings())
}

// Patch applies direct edits. Out-of-range values are clamped, not
// rejected.
func (h *SettingsHandler) Patch(c *gin.Context) {
	var patch models.AdvancedPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid settings patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	settings := h.calibration.Apply(c.Request.Context(), patch)
	h.dashboard.Invalidate()

	c.JSON(http.StatusOK, settings)
}

// Toggle enables or disables advanced mode and reports which follow-ups
// the client should run (open the configurator, request advice).
func (h *SettingsHandler) Toggle(c *gin.Context) {
	var req models.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid toggle payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res := h.calibration.Toggle(c.Request.Context(), req.Enabled, calibration.ToggleOptions{
		SkipConfigurator: req.SkipConfigurator,
		SkipAdvice:       req.SkipAdvice,
	})
	if res.Changed {
		h.dashboard.Invalidate()
	}

	c.JSON(http.StatusOK, gin.H{
		"enabled":           res.Enabled,
		"changed":           res.Changed,
		"open_configurator": res.OpenConfigurator,
		"request_advice":    res.RequestAdvice,
	})
}

// RequestAdvice fetches fresh AI advice and hydrates the calibration
// with it. Only one request runs at a time; a second one gets 409.
func (h *SettingsHandler) RequestAdvice(c *gin.Context) {
	settings := h.calibration.Settings()

	req := models.AdviceRequest{
		Population:  h.dashboard.Assumptions().Population,
		ChickenType: h.dashboard.ChickenType(),
		Coop:        settings.Coop,
		CustomNeeds: settings.Coop.Extras,
	}

	updated, err := h.calibration.RefreshAdvice(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, calibration.ErrAdviceInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": "advice request already in flight"})
			return
		}
		h.logger.Error("advice refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "advice unavailable"})
		return
	}

	h.dashboard.Invalidate()
	c.JSON(http.StatusOK, updated)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petokpredict/server/internal/domain/models"
	"github.com/petokpredict/server/internal/repository/mongodb"
	"github.com/petokpredict/server/internal/service/calibration"
	"github.com/petokpredict/server/internal/service/dashboard"
	"github.com/petokpredict/server/internal/service/history"
	"github.com/petokpredict/server/internal/service/market"
)

// HistoryHandler serves the saved-calculation history.
type HistoryHandler struct {
	history     *history.Service
	dashboard   *dashboard.Service
	calibration *calibration.Service
	market      *market.Service
	logger      *zap.Logger
}

// NewHistoryHandler constructs the HTTP handler adapter.
func NewHistoryHandler(historySvc *history.Service, dashboardSvc *dashboard.Service, cal *calibration.Service, marketSvc *market.Service, logger *zap.Logger) *HistoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryHandler{
		history:     historySvc,
		dashboard:   dashboardSvc,
		calibration: cal,
		market:      marketSvc,
		logger:      logger,
	}
}

// Save snapshots the current dashboard result into the history.
func (h *HistoryHandler) Save(c *gin.Context) {
	var req models.SaveCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	chickenType := h.dashboard.ChickenType()
	record, err := h.history.Save(
		c.Request.Context(),
		chickenType,
		h.dashboard.Latest(),
		h.calibration.Settings(),
		h.market.Quote(chickenType),
		req.Notes,
	)
	if err != nil {
		h.logger.Error("failed saving calculation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save calculation"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// List returns the stored history.
func (h *HistoryHandler) List(c *gin.Context) {
	records, err := h.history.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing calculations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list calculations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"calculations": records})
}

// Delete removes one record.
func (h *HistoryHandler) Delete(c *gin.Context) {
	err := h.history.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "calculation not found"})
			return
		}
		h.logger.Error("failed deleting calculation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete calculation"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Favorite pins or unpins a record in the history list.
func (h *HistoryHandler) Favorite(c *gin.Context) {
	var req struct {
		Favorite bool `json:"favorite"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid favorite payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.history.SetFavorite(c.Request.Context(), c.Param("id"), req.Favorite)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "calculation not found"})
			return
		}
		h.logger.Error("failed updating favorite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update calculation"})
		return
	}

	c.Status(http.StatusOK)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petokpredict/server/internal/domain/models"
	"github.com/petokpredict/server/internal/service/dashboard"
	"github.com/petokpredict/server/internal/service/market"
)

// CalculatorHandler serves market prices and economics computations.
type CalculatorHandler struct {
	dashboard *dashboard.Service
	market    *market.Service
	logger    *zap.Logger
}

// NewCalculatorHandler constructs the HTTP handler adapter.
func NewCalculatorHandler(dashboardSvc *dashboard.Service, marketSvc *market.Service, logger *zap.Logger) *CalculatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorHandler{dashboard: dashboardSvc, market: marketSvc, logger: logger}
}

// GetPrice returns the cached market quote for a chicken type, fetching
// it live when nothing is cached yet.
func (h *CalculatorHandler) GetPrice(c *gin.Context) {
	t := models.ParseChickenType(c.Query("type"))

	quote := h.market.Quote(t)
	if quote == nil {
		fetched, err := h.market.Refresh(c.Request.Context(), t)
		if err != nil {
			h.logger.Warn("price fetch failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "market price unavailable"})
			return
		}
		quote = fetched
	}

	c.JSON(http.StatusOK, quote)
}

// OverridePrice applies a manually entered market price.
func (h *CalculatorHandler) OverridePrice(c *gin.Context) {
	var req models.PriceOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid override payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a positive number"})
		return
	}

	quote := h.market.Override(models.ParseChickenType(req.ChickenType), req.Price)
	h.dashboard.Invalidate()

	c.JSON(http.StatusOK, quote)
}

// Compute runs one economics computation against the current dashboard
// state, optionally patched by the request.
func (h *CalculatorHandler) Compute(c *gin.Context) {
	var req models.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid compute payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.dashboard.Compute(req))
}

// Scenarios returns the optimistic/realistic/conservative spread.
func (h *CalculatorHandler) Scenarios(c *gin.Context) {
	var req models.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid scenarios payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": h.dashboard.Scenarios(req)})
}

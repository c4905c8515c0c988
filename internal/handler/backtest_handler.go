package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/signal-engine/internal/model"
	"github.com/yourorg/signal-engine/internal/service"
)

// BacktestHandler handles backtest HTTP requests
type BacktestHandler struct {
	backtestService *service.BacktestService
	logger          *zap.Logger
}

// NewBacktestHandler creates a new backtest handler
func NewBacktestHandler(backtestService *service.BacktestService, logger *zap.Logger) *BacktestHandler {
	return &BacktestHandler{
		backtestService: backtestService,
		logger:          logger,
	}
}

// Run handles running a backtest replay over a supplied candle series
func (h *BacktestHandler) Run(c *gin.Context) {
	var request model.BacktestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.backtestService.RunBacktest(c.Request.Context(), &request)
	if err != nil {
		h.logger.Error("Failed to run backtest",
			zap.Error(err),
			zap.String("symbol", request.Symbol),
			zap.String("timeframe", request.Timeframe))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

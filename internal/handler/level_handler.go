package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/signal-engine/internal/model"
	"github.com/yourorg/signal-engine/internal/service"
	"github.com/yourorg/signal-engine/internal/validator"
)

// LevelHandler handles level-detection HTTP requests
type LevelHandler struct {
	signalService *service.SignalService
	logger        *zap.Logger
}

// NewLevelHandler creates a new level handler
func NewLevelHandler(signalService *service.SignalService, logger *zap.Logger) *LevelHandler {
	return &LevelHandler{
		signalService: signalService,
		logger:        logger,
	}
}

// DetectRequest carries a candle window for level detection. Lookback and
// tolerance fall back to the configured defaults when zero.
type DetectRequest struct {
	Candles   []model.Candle `json:"candles" binding:"required"`
	Timeframe string         `json:"timeframe" binding:"required"`
	Lookback  int            `json:"lookback,omitempty"`
	Tolerance float64        `json:"tolerance,omitempty"`
}

// Detect handles deriving support/resistance levels from a candle window
func (h *LevelHandler) Detect(c *gin.Context) {
	var request DetectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validator.ValidateCandles(request.Candles); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lvls := h.signalService.DetectLevels(request.Candles, request.Timeframe, request.Lookback, request.Tolerance)

	c.JSON(http.StatusOK, gin.H{
		"timeframe": request.Timeframe,
		"count":     len(lvls),
		"levels":    lvls,
	})
}

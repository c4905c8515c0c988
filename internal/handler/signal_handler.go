package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/signal-engine/internal/model"
	"github.com/yourorg/signal-engine/internal/service"
	"github.com/yourorg/signal-engine/internal/strategy"
	"github.com/yourorg/signal-engine/internal/validator"
)

// SignalHandler handles strategy-engine HTTP requests
type SignalHandler struct {
	signalService *service.SignalService
	logger        *zap.Logger
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(signalService *service.SignalService, logger *zap.Logger) *SignalHandler {
	return &SignalHandler{
		signalService: signalService,
		logger:        logger,
	}
}

// ScanRequest carries one snapshot for the strategy engine. Levels are
// optional; when omitted they are derived from the 15-minute candles.
type ScanRequest struct {
	Quote      model.StockQuote               `json:"quote" binding:"required"`
	Candles1m  []model.Candle                 `json:"candles_1m"`
	Candles5m  []model.Candle                 `json:"candles_5m"`
	Candles15m []model.Candle                 `json:"candles_15m"`
	Levels     []model.SupportResistanceLevel `json:"levels"`
	NewsScore  float64                        `json:"news_score"`
}

// Scan handles running the strategy engine against a snapshot
func (h *SignalHandler) Scan(c *gin.Context) {
	var request ScanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, series := range [][]model.Candle{request.Candles1m, request.Candles5m, request.Candles15m} {
		if err := validator.ValidateCandles(series); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	lvls := request.Levels
	if len(lvls) == 0 && len(request.Candles15m) > 0 {
		lvls = h.signalService.DetectLevels(request.Candles15m, "15m", 0, 0)
	}

	setups := h.signalService.RunStrategyEngine(c.Request.Context(), strategy.Input{
		Quote:      request.Quote,
		Candles1m:  request.Candles1m,
		Candles5m:  request.Candles5m,
		Candles15m: request.Candles15m,
		Levels:     lvls,
		NewsScore:  request.NewsScore,
	})

	c.JSON(http.StatusOK, gin.H{
		"symbol": request.Quote.Symbol,
		"count":  len(setups),
		"setups": setups,
	})
}

package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/signal-engine/internal/backtest"
	"github.com/yourorg/signal-engine/internal/config"
	"github.com/yourorg/signal-engine/internal/events"
	"github.com/yourorg/signal-engine/internal/model"
	"github.com/yourorg/signal-engine/internal/validator"
)

// BacktestService handles backtest replay runs
type BacktestService struct {
	cfg       config.BacktestConfig
	publisher *events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewBacktestService creates a new backtest service
func NewBacktestService(cfg config.BacktestConfig, publisher *events.Publisher, logger *zap.Logger) *BacktestService {
	return &BacktestService{
		cfg:       cfg,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the wall clock used to stamp published events.
func (s *BacktestService) WithClock(now func() time.Time) *BacktestService {
	s.now = now
	return s
}

// RunBacktest validates the request, replays the strategy engine over the
// supplied series and publishes the completed run.
func (s *BacktestService) RunBacktest(ctx context.Context, req *model.BacktestRequest) (model.BacktestResult, error) {
	if err := validator.ValidateBacktestRequest(req); err != nil {
		return model.BacktestResult{}, err
	}

	cfg := backtest.Config{
		MinLookback: s.cfg.MinLookback,
		MaxHold:     s.cfg.MaxHold,
	}
	if req.MinLookback > 0 {
		cfg.MinLookback = req.MinLookback
	}
	if req.MaxHold > 0 {
		cfg.MaxHold = req.MaxHold
	}

	result := backtest.Run(req.Candles, req.Symbol, req.Timeframe, req.StrategyFilter, cfg)

	s.logger.Info("Backtest completed",
		zap.String("symbol", req.Symbol),
		zap.String("timeframe", req.Timeframe),
		zap.String("strategyFilter", req.StrategyFilter),
		zap.Int("candles", len(req.Candles)),
		zap.Int("totalTrades", result.TotalTrades),
		zap.Float64("winRate", result.WinRate),
		zap.Float64("totalPnlPercent", result.TotalPnlPercent))

	s.publisher.PublishBacktestResult(ctx, result, s.now())
	return result, nil
}

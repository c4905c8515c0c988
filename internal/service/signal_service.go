package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/signal-engine/internal/config"
	"github.com/yourorg/signal-engine/internal/events"
	"github.com/yourorg/signal-engine/internal/levels"
	"github.com/yourorg/signal-engine/internal/model"
	"github.com/yourorg/signal-engine/internal/strategy"
	"github.com/yourorg/signal-engine/internal/validator"
)

// SignalService runs the strategy engine around the pure core: it validates
// emitted setups, logs rejected ones and publishes the ranked survivors.
type SignalService struct {
	cfg       config.EngineConfig
	publisher *events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewSignalService creates a new signal service
func NewSignalService(cfg config.EngineConfig, publisher *events.Publisher, logger *zap.Logger) *SignalService {
	return &SignalService{
		cfg:       cfg,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the wall clock used to stamp setups. Tests use this to
// make generated_at/valid_until deterministic.
func (s *SignalService) WithClock(now func() time.Time) *SignalService {
	s.now = now
	return s
}

// DetectLevels derives support/resistance levels from a candle window using
// the configured lookback and tolerance unless the caller overrides them.
func (s *SignalService) DetectLevels(candles []model.Candle, timeframe string, lookback int, tolerance float64) []model.SupportResistanceLevel {
	if lookback <= 0 {
		lookback = s.cfg.LevelLookback
	}
	if tolerance <= 0 {
		tolerance = s.cfg.LevelTolerance
	}
	lvls := levels.Detect(candles, timeframe, lookback, tolerance)

	s.logger.Debug("Detected levels",
		zap.String("timeframe", timeframe),
		zap.Int("candles", len(candles)),
		zap.Int("levels", len(lvls)))
	return lvls
}

// RunStrategyEngine evaluates every strategy against the snapshot and returns
// the ranked setups, stamped with the service clock.
func (s *SignalService) RunStrategyEngine(ctx context.Context, in strategy.Input) []model.TradeSetup {
	return s.RunStrategyEngineAt(ctx, in, s.now())
}

// RunStrategyEngineAt is RunStrategyEngine with an explicit timestamp.
func (s *SignalService) RunStrategyEngineAt(ctx context.Context, in strategy.Input, now time.Time) []model.TradeSetup {
	candidates := strategy.EvaluateAll(in, now)

	valid := make([]*model.TradeSetup, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if err := validator.ValidateSetup(c); err != nil {
			// A strategy emitting a malformed setup is a programming error,
			// not a market condition.
			s.logger.Error("Rejected invalid setup",
				zap.String("strategy", c.StrategyID),
				zap.String("symbol", c.Symbol),
				zap.Error(err))
			continue
		}
		valid = append(valid, c)
	}

	ranked := strategy.Rank(valid)

	s.logger.Info("Strategy engine run complete",
		zap.String("symbol", in.Quote.Symbol),
		zap.Int("setups", len(ranked)))

	s.publisher.PublishSetups(ctx, in.Quote.Symbol, ranked, now)
	return ranked
}

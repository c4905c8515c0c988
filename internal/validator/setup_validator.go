package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yourorg/signal-engine/internal/model"
)

var validate = validator.New()

// ValidateSetup checks the direction-ordering invariant of a trade setup:
// for a long, stop < entry < target1 < target2 < target3; for a short the
// ordering is fully reversed. A violation is a data-integrity defect in the
// emitting strategy, not a user-facing condition.
func ValidateSetup(s *model.TradeSetup) error {
	if s == nil {
		return errors.New("setup is nil")
	}

	switch s.Direction {
	case model.DirectionLong:
		if !(s.StopLoss < s.Entry && s.Entry < s.Target1 && s.Target1 < s.Target2 && s.Target2 < s.Target3) {
			return fmt.Errorf("long setup violates price ordering: stop=%.4f entry=%.4f targets=%.4f/%.4f/%.4f",
				s.StopLoss, s.Entry, s.Target1, s.Target2, s.Target3)
		}
	case model.DirectionShort:
		if !(s.StopLoss > s.Entry && s.Entry > s.Target1 && s.Target1 > s.Target2 && s.Target2 > s.Target3) {
			return fmt.Errorf("short setup violates price ordering: stop=%.4f entry=%.4f targets=%.4f/%.4f/%.4f",
				s.StopLoss, s.Entry, s.Target1, s.Target2, s.Target3)
		}
	default:
		return fmt.Errorf("invalid direction: %s", s.Direction)
	}

	if s.RiskReward < 0 {
		return errors.New("risk/reward cannot be negative")
	}

	return nil
}

// ValidateBacktestRequest checks a backtest request beyond gin's binding tags:
// struct-level validate tags plus candle ordering.
func ValidateBacktestRequest(r *model.BacktestRequest) error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	if r.StrategyFilter != "" && !knownStrategy(r.StrategyFilter) {
		return fmt.Errorf("unknown strategy: %s", r.StrategyFilter)
	}

	return ValidateCandles(r.Candles)
}

// ValidateCandles verifies that a candle series is sorted ascending by time.
func ValidateCandles(candles []model.Candle) error {
	for i := 1; i < len(candles); i++ {
		if candles[i].Time.Before(candles[i-1].Time) {
			return fmt.Errorf("candles out of order at index %d", i)
		}
	}
	return nil
}

func knownStrategy(id string) bool {
	for _, s := range model.StrategyIDs {
		if s == id {
			return true
		}
	}
	return false
}

package strategy

import (
	"math"
	"time"

	"github.com/yourorg/signal-engine/internal/model"
)

// Input bundles everything a strategy evaluator may look at. NewsScore is an
// aggregate sentiment-times-impact scalar in roughly [-10, 10]; zero means no
// news signal.
type Input struct {
	Quote      model.StockQuote
	Candles1m  []model.Candle
	Candles5m  []model.Candle
	Candles15m []model.Candle
	Levels     []model.SupportResistanceLevel
	NewsScore  float64
}

// Evaluator is one rule-based strategy. It returns nil when its conditions
// are not met; that is the normal "no signal" path, never an error.
type Evaluator func(in Input, now time.Time) *model.TradeSetup

// convictionForScore maps an additive score to a tier: >=8 A, >=5 B, else C.
func convictionForScore(score int) model.Conviction {
	switch {
	case score >= 8:
		return model.ConvictionA
	case score >= 5:
		return model.ConvictionB
	default:
		return model.ConvictionC
	}
}

// riskLevelFor buckets the percentage distance from entry to stop.
func riskLevelFor(riskPercent float64) model.RiskLevel {
	switch {
	case riskPercent < 2:
		return model.RiskLow
	case riskPercent < 5:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// riskReward is |target2-entry| / |entry-stop| rounded to 2 decimals,
// 0 when the risk is 0.
func riskReward(entry, stop, target2 float64) float64 {
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0
	}
	return round2(math.Abs(target2-entry) / risk)
}

// targets projects the three profit targets from entry in the trade direction,
// as multiples of the entry-to-stop range.
func targets(entry, stop float64, dir model.Direction, m1, m2, m3 float64) (t1, t2, t3 float64) {
	rng := math.Abs(entry - stop)
	if dir == model.DirectionLong {
		return entry + m1*rng, entry + m2*rng, entry + m3*rng
	}
	return entry - m1*rng, entry - m2*rng, entry - m3*rng
}

// riskPercent is the stop distance as a percentage of entry, 2 decimals.
func riskPercent(entry, stop float64) float64 {
	if entry == 0 {
		return 0
	}
	return round2(math.Abs(entry-stop) / entry * 100)
}

// vwap computes the typical-price-weighted average price over a candle window.
func vwap(candles []model.Candle) float64 {
	var sumPV, sumV float64
	for _, c := range candles {
		sumPV += c.TypicalPrice() * c.Volume
		sumV += c.Volume
	}
	if sumV == 0 {
		return 0
	}
	return sumPV / sumV
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

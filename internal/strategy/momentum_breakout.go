package strategy

import (
	"fmt"
	"time"

	"github.com/yourorg/signal-engine/internal/model"
)

const (
	momentumMinChange    = 5.0
	momentumStrongChange = 10.0
	momentumSurgeRatio   = 1.5
	momentumValidFor     = 20 * time.Minute
)

// MomentumBreakout buys a break of the recent 5-minute range on a volume
// surge. Long only: the day must already be up at least 5% and the latest
// candle's volume must exceed 1.5x the trailing five-candle average.
func MomentumBreakout(in Input, now time.Time) *model.TradeSetup {
	if len(in.Candles5m) < 5 {
		return nil
	}
	q := in.Quote
	if q.ChangePercent < momentumMinChange {
		return nil
	}

	candles := in.Candles5m
	last := candles[len(candles)-1]
	avgVol := trailingAvgVolume(candles, 5)
	if avgVol == 0 || last.Volume <= momentumSurgeRatio*avgVol {
		return nil
	}
	surge := last.Volume / avgVol

	recent := candles[len(candles)-5:]
	hi, lo := recent[0].High, recent[0].Low
	for _, c := range recent[1:] {
		if c.High > hi {
			hi = c.High
		}
		if c.Low < lo {
			lo = c.Low
		}
	}

	entry := hi + 0.01
	stop := lo - 0.01
	t1, t2, t3 := targets(entry, stop, model.DirectionLong, 1.0, 2.0, 3.5)

	score := 5 + 2 // volume surge confirmed
	reasoning := []string{
		fmt.Sprintf("Up %.1f%% on the day with momentum intact", q.ChangePercent),
		fmt.Sprintf("Volume surge %.1fx trailing average", surge),
		fmt.Sprintf("Breakout over 5-candle high %.2f", hi),
	}
	if q.ChangePercent > momentumStrongChange {
		score += 2
		reasoning = append(reasoning, "Extended move above 10% adds conviction")
	}

	rp := riskPercent(entry, stop)
	return &model.TradeSetup{
		StrategyID:  model.StrategyMomentumBreakout,
		Symbol:      q.Symbol,
		Direction:   model.DirectionLong,
		Entry:       entry,
		StopLoss:    stop,
		Target1:     t1,
		Target2:     t2,
		Target3:     t3,
		RiskReward:  riskReward(entry, stop, t2),
		RiskPercent: rp,
		Conviction:  convictionForScore(score),
		RiskLevel:   riskLevelFor(rp),
		Reasoning:   reasoning,
		Timeframe:   "5m",
		ValidUntil:  now.Add(momentumValidFor),
		GeneratedAt: now,
	}
}

// trailingAvgVolume averages the volume of up to n candles preceding the
// last one.
func trailingAvgVolume(candles []model.Candle, n int) float64 {
	end := len(candles) - 1
	start := end - n
	if start < 0 {
		start = 0
	}
	if end <= start {
		return 0
	}
	var sum float64
	for _, c := range candles[start:end] {
		sum += c.Volume
	}
	return sum / float64(end-start)
}

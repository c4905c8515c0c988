package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/yourorg/signal-engine/internal/levels"
	"github.com/yourorg/signal-engine/internal/model"
)

const (
	gapMinPercent    = 3.0
	gapStrongPercent = 7.0
	gapValidFor      = 15 * time.Minute
)

// GapAndGo trades the continuation of a large overnight gap. It needs at
// least three 1-minute candles and an open at least 3% away from the previous
// close; the first candle's range defines entry and stop on the gap side.
func GapAndGo(in Input, now time.Time) *model.TradeSetup {
	if len(in.Candles1m) < 3 {
		return nil
	}
	q := in.Quote
	if q.PrevClose == 0 {
		return nil
	}
	gapPct := (q.Open - q.PrevClose) / q.PrevClose * 100
	if math.Abs(gapPct) < gapMinPercent {
		return nil
	}

	first := in.Candles1m[0]
	dir := model.DirectionLong
	entry := first.High + 0.01
	stop := first.Low - 0.01
	if gapPct < 0 {
		dir = model.DirectionShort
		entry = first.Low - 0.01
		stop = first.High + 0.01
	}

	t1, t2, t3 := targets(entry, stop, dir, 1.5, 2.5, 4.0)

	score := 6
	reasoning := []string{
		fmt.Sprintf("Gap %+.1f%% vs previous close", gapPct),
		fmt.Sprintf("First candle range %.2f-%.2f defines the trigger", first.Low, first.High),
	}
	if openOnFavorableLevel(q.Open, dir, in.Levels) {
		score += 2
		reasoning = append(reasoning, "Gap open sits on a favorable level")
	}
	if math.Abs(gapPct) > gapStrongPercent {
		score += 2
		reasoning = append(reasoning, fmt.Sprintf("Outsized gap above %.0f%%", gapStrongPercent))
	}

	rp := riskPercent(entry, stop)
	return &model.TradeSetup{
		StrategyID:  model.StrategyGapAndGo,
		Symbol:      q.Symbol,
		Direction:   dir,
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
		Timeframe:   "1m",
		ValidUntil:  now.Add(gapValidFor),
		GeneratedAt: now,
	}
}

// openOnFavorableLevel reports whether the gap open lands within 1% of the
// nearest support below (long) or resistance above (short).
func openOnFavorableLevel(open float64, dir model.Direction, lvls []model.SupportResistanceLevel) bool {
	if open == 0 {
		return false
	}
	support, resistance := levels.Nearest(open, lvls)
	if dir == model.DirectionLong {
		return support != nil && (open-support.Price)/open <= 0.01
	}
	return resistance != nil && (resistance.Price-open)/open <= 0.01
}

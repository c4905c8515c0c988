package strategy

import (
	"fmt"
	"time"

	"github.com/yourorg/signal-engine/internal/model"
)

const firstCandleValidFor = 10 * time.Minute

// FirstCandleHold buys a break of the opening 1-minute candle when price has
// held above its range. Long only: the day must be green and the latest close
// must sit above the first candle's low and at or above its open.
func FirstCandleHold(in Input, now time.Time) *model.TradeSetup {
	candles := in.Candles1m
	if len(candles) < 5 {
		return nil
	}
	if in.Quote.ChangePercent <= 0 {
		return nil
	}

	first := candles[0]
	last := candles[len(candles)-1]
	if last.Close <= first.Low || last.Close < first.Open {
		return nil
	}

	entry := first.High + 0.01
	stop := first.Low - 0.01
	t1, t2, t3 := targets(entry, stop, model.DirectionLong, 1.0, 2.0, 3.0)

	rp := riskPercent(entry, stop)
	return &model.TradeSetup{
		StrategyID:  model.StrategyFirstCandleHold,
		Symbol:      in.Quote.Symbol,
		Direction:   model.DirectionLong,
		Entry:       entry,
		StopLoss:    stop,
		Target1:     t1,
		Target2:     t2,
		Target3:     t3,
		RiskReward:  riskReward(entry, stop, t2),
		RiskPercent: rp,
		Conviction:  model.ConvictionB,
		RiskLevel:   riskLevelFor(rp),
		Reasoning: []string{
			fmt.Sprintf("Holding above opening candle range %.2f-%.2f", first.Low, first.High),
			"Break of the opening high triggers entry",
		},
		Timeframe:   "1m",
		ValidUntil:  now.Add(firstCandleValidFor),
		GeneratedAt: now,
	}
}

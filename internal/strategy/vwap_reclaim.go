package strategy

import (
	"fmt"
	"time"

	"github.com/yourorg/signal-engine/internal/model"
)

const (
	vwapMinCandles = 10
	vwapStopFactor = 0.998
	vwapValidFor   = 30 * time.Minute
)

// VWAPReclaim goes long when price crosses back above the session VWAP:
// the previous 5-minute candle closed below it and the latest closed above.
func VWAPReclaim(in Input, now time.Time) *model.TradeSetup {
	candles := in.Candles5m
	if len(candles) < vwapMinCandles {
		return nil
	}

	v := vwap(candles)
	if v == 0 {
		return nil
	}
	prev := candles[len(candles)-2]
	last := candles[len(candles)-1]
	if prev.Close >= v || last.Close <= v {
		return nil
	}

	entry := last.Close
	stop := v * vwapStopFactor
	t1, t2, t3 := targets(entry, stop, model.DirectionLong, 1.5, 2.5, 4.0)

	rp := riskPercent(entry, stop)
	return &model.TradeSetup{
		StrategyID:  model.StrategyVWAPReclaim,
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
			fmt.Sprintf("Reclaimed VWAP %.2f after closing below it", v),
			fmt.Sprintf("Stop just under VWAP at %.2f", stop),
		},
		Timeframe:   "5m",
		ValidUntil:  now.Add(vwapValidFor),
		GeneratedAt: now,
	}
}

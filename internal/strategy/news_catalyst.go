package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/yourorg/signal-engine/internal/model"
)

const (
	newsMinScore    = 3.0
	newsStrongScore = 6.0
	newsValidFor    = 20 * time.Minute
)

// NewsCatalyst trades in the direction of a strong aggregate news score.
// It needs |score| >= 3 and at least three 5-minute candles; the latest
// candle's range defines entry and stop on the score's side.
func NewsCatalyst(in Input, now time.Time) *model.TradeSetup {
	if math.Abs(in.NewsScore) < newsMinScore {
		return nil
	}
	if len(in.Candles5m) < 3 {
		return nil
	}

	last := in.Candles5m[len(in.Candles5m)-1]
	dir := model.DirectionLong
	entry := last.High + 0.01
	stop := last.Low - 0.01
	if in.NewsScore < 0 {
		dir = model.DirectionShort
		entry = last.Low - 0.01
		stop = last.High + 0.01
	}

	t1, t2, t3 := targets(entry, stop, dir, 1.0, 2.0, 3.5)

	conviction := model.ConvictionB
	if math.Abs(in.NewsScore) >= newsStrongScore {
		conviction = model.ConvictionA
	}

	rp := riskPercent(entry, stop)
	return &model.TradeSetup{
		StrategyID:  model.StrategyNewsCatalyst,
		Symbol:      in.Quote.Symbol,
		Direction:   dir,
		Entry:       entry,
		StopLoss:    stop,
		Target1:     t1,
		Target2:     t2,
		Target3:     t3,
		RiskReward:  riskReward(entry, stop, t2),
		RiskPercent: rp,
		Conviction:  conviction,
		RiskLevel:   riskLevelFor(rp),
		Reasoning: []string{
			fmt.Sprintf("News impact score %.1f", in.NewsScore),
			fmt.Sprintf("Latest candle range %.2f-%.2f defines the trigger", last.Low, last.High),
		},
		Timeframe:   "5m",
		ValidUntil:  now.Add(newsValidFor),
		GeneratedAt: now,
	}
}

package model

import (
	"time"
)

// Direction is the side of a trade setup
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Conviction is the categorical confidence tier of a setup, A > B > C
type Conviction string

const (
	ConvictionA Conviction = "A"
	ConvictionB Conviction = "B"
	ConvictionC Conviction = "C"
)

// RiskLevel buckets a setup by the percentage distance to its stop
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Strategy identifiers for the fixed evaluator set
const (
	StrategyGapAndGo         = "gap_and_go"
	StrategyMomentumBreakout = "momentum_breakout"
	StrategyVWAPReclaim      = "vwap_reclaim"
	StrategyFirstCandleHold  = "first_candle_hold"
	StrategyNewsCatalyst     = "news_catalyst"
)

// StrategyIDs lists every strategy the engine evaluates, in evaluation order
var StrategyIDs = []string{
	StrategyGapAndGo,
	StrategyMomentumBreakout,
	StrategyVWAPReclaim,
	StrategyFirstCandleHold,
	StrategyNewsCatalyst,
}

// TradeSetup represents one actionable trade idea emitted by a strategy
type TradeSetup struct {
	StrategyID  string     `json:"strategy_id"`
	Symbol      string     `json:"symbol"`
	Direction   Direction  `json:"direction"`
	Entry       float64    `json:"entry"`
	StopLoss    float64    `json:"stop_loss"`
	Target1     float64    `json:"target1"`
	Target2     float64    `json:"target2"`
	Target3     float64    `json:"target3"`
	RiskReward  float64    `json:"risk_reward"`
	RiskPercent float64    `json:"risk_percent"`
	Conviction  Conviction `json:"conviction"`
	RiskLevel   RiskLevel  `json:"risk_level"`
	Reasoning   []string   `json:"reasoning"`
	Timeframe   string     `json:"timeframe"`
	ValidUntil  time.Time  `json:"valid_until"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// ConvictionRank maps a conviction tier to a sortable rank (A highest)
func ConvictionRank(c Conviction) int {
	switch c {
	case ConvictionA:
		return 3
	case ConvictionB:
		return 2
	case ConvictionC:
		return 1
	default:
		return 0
	}
}

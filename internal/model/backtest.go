package model

import (
	"time"
)

// TradeOutcome is the resolution of a simulated backtest trade
type TradeOutcome string

const (
	OutcomeWin     TradeOutcome = "win"
	OutcomeLoss    TradeOutcome = "loss"
	OutcomeTimeout TradeOutcome = "timeout"
)

// BacktestTrade represents a single simulated trade recorded during a replay
type BacktestTrade struct {
	EntryTime  time.Time    `json:"entry_time"`
	ExitTime   time.Time    `json:"exit_time"`
	EntryPrice float64      `json:"entry_price"`
	ExitPrice  float64      `json:"exit_price"`
	Direction  Direction    `json:"direction"`
	Target     float64      `json:"target"`
	Stop       float64      `json:"stop"`
	Outcome    TradeOutcome `json:"outcome"`
	PnlPercent float64      `json:"pnl_percent"`
	RR         float64      `json:"rr"`
	StrategyID string       `json:"strategy_id"`
}

// BacktestResult represents the aggregate outcome of one replay run
type BacktestResult struct {
	Symbol          string          `json:"symbol"`
	Timeframe       string          `json:"timeframe"`
	StrategyFilter  string          `json:"strategy_filter,omitempty"`
	Trades          []BacktestTrade `json:"trades"`
	WinRate         float64         `json:"win_rate"`
	TotalPnlPercent float64         `json:"total_pnl_percent"`
	AvgRR           float64         `json:"avg_rr"`
	MaxDrawdown     float64         `json:"max_drawdown"`
	TotalTrades     int             `json:"total_trades"`
	Wins            int             `json:"wins"`
	Losses          int             `json:"losses"`
}

// BacktestRequest represents the input parameters for a backtest run
type BacktestRequest struct {
	Symbol         string   `json:"symbol" binding:"required"`
	Timeframe      string   `json:"timeframe" binding:"required"`
	StrategyFilter string   `json:"strategy_filter,omitempty"`
	Candles        []Candle `json:"candles" binding:"required"`
	MinLookback    int      `json:"min_lookback,omitempty" validate:"omitempty,min=5,max=500"`
	MaxHold        int      `json:"max_hold,omitempty" validate:"omitempty,min=1,max=500"`
}

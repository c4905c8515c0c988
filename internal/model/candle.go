package model

import (
	"time"
)

// Candle represents a single OHLCV price bar, ordered ascending by time
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// MarketSession identifies the trading session a quote was taken in
type MarketSession string

const (
	SessionPre     MarketSession = "pre"
	SessionRegular MarketSession = "regular"
	SessionPost    MarketSession = "post"
)

// StockQuote represents a point-in-time snapshot for a symbol
type StockQuote struct {
	Symbol        string        `json:"symbol"`
	Price         float64       `json:"price"`
	Change        float64       `json:"change"`
	ChangePercent float64       `json:"change_percent"`
	Open          float64       `json:"open"`
	High          float64       `json:"high"`
	Low           float64       `json:"low"`
	PrevClose     float64       `json:"prev_close"`
	Session       MarketSession `json:"session"`
	Timestamp     time.Time     `json:"timestamp"`
	Triggered     bool          `json:"triggered"`
}

// TypicalPrice returns (high + low + close) / 3 for a candle
func (c Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3.0
}

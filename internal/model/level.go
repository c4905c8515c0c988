package model

// LevelType classifies a detected price level
type LevelType string

const (
	LevelSupport    LevelType = "support"
	LevelResistance LevelType = "resistance"
	LevelPivot      LevelType = "pivot"
)

// SupportResistanceLevel represents a merged price level with a touch count
type SupportResistanceLevel struct {
	Price     float64   `json:"price"`
	Type      LevelType `json:"type"`
	Strength  int       `json:"strength"`
	Timeframe string    `json:"timeframe"`
}

package levels

import (
	"math"
	"sort"

	"github.com/yourorg/signal-engine/internal/model"
)

// Default tuning for the swing scan
const (
	DefaultLookback  = 50
	DefaultTolerance = 0.003
	swingWindow      = 2
	maxLevels        = 10
)

// Detect derives support and resistance levels from a candle window.
// A candle is a swing high (low) when its high (low) is the extreme among
// itself and the two neighbors on each side. Levels of the same type whose
// prices differ by at most tolerance (as a fraction) are merged by averaging
// the price and summing the touch count. The result is sorted by descending
// strength and capped at 10 levels. Fewer than 5 candles yields an empty list.
func Detect(candles []model.Candle, timeframe string, lookback int, tolerance float64) []model.SupportResistanceLevel {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if len(candles) < swingWindow*2+1 {
		return []model.SupportResistanceLevel{}
	}

	window := candles
	if len(window) > lookback {
		window = window[len(window)-lookback:]
	}

	raw := make([]model.SupportResistanceLevel, 0, len(window)/3)
	for i := swingWindow; i < len(window)-swingWindow; i++ {
		if isSwingHigh(window, i) {
			raw = append(raw, model.SupportResistanceLevel{
				Price:     window[i].High,
				Type:      model.LevelResistance,
				Strength:  1,
				Timeframe: timeframe,
			})
		}
		if isSwingLow(window, i) {
			raw = append(raw, model.SupportResistanceLevel{
				Price:     window[i].Low,
				Type:      model.LevelSupport,
				Strength:  1,
				Timeframe: timeframe,
			})
		}
	}

	merged := mergeLevels(raw, tolerance)

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Strength > merged[b].Strength
	})
	if len(merged) > maxLevels {
		merged = merged[:maxLevels]
	}
	return merged
}

// CalcPivotPoints computes classic floor-trader pivots from one completed
// daily candle. Strengths are fixed: pivot 5, R1/S1 3, R2/S2 2.
func CalcPivotPoints(prevDay model.Candle) []model.SupportResistanceLevel {
	p := (prevDay.High + prevDay.Low + prevDay.Close) / 3.0
	r1 := 2*p - prevDay.Low
	s1 := 2*p - prevDay.High
	r2 := p + (prevDay.High - prevDay.Low)
	s2 := p - (prevDay.High - prevDay.Low)

	return []model.SupportResistanceLevel{
		{Price: p, Type: model.LevelPivot, Strength: 5, Timeframe: "1d"},
		{Price: r1, Type: model.LevelResistance, Strength: 3, Timeframe: "1d"},
		{Price: s1, Type: model.LevelSupport, Strength: 3, Timeframe: "1d"},
		{Price: r2, Type: model.LevelResistance, Strength: 2, Timeframe: "1d"},
		{Price: s2, Type: model.LevelSupport, Strength: 2, Timeframe: "1d"},
	}
}

// Nearest returns the closest support below price and the closest resistance
// or pivot above it. Either result may be nil.
func Nearest(price float64, lvls []model.SupportResistanceLevel) (support, resistance *model.SupportResistanceLevel) {
	for i := range lvls {
		l := lvls[i]
		switch {
		case l.Type == model.LevelSupport && l.Price < price:
			if support == nil || l.Price > support.Price {
				support = &lvls[i]
			}
		case (l.Type == model.LevelResistance || l.Type == model.LevelPivot) && l.Price > price:
			if resistance == nil || l.Price < resistance.Price {
				resistance = &lvls[i]
			}
		}
	}
	return support, resistance
}

func isSwingHigh(c []model.Candle, i int) bool {
	h := c[i].High
	for j := i - swingWindow; j <= i+swingWindow; j++ {
		if c[j].High > h {
			return false
		}
	}
	return true
}

func isSwingLow(c []model.Candle, i int) bool {
	l := c[i].Low
	for j := i - swingWindow; j <= i+swingWindow; j++ {
		if c[j].Low < l {
			return false
		}
	}
	return true
}

// mergeLevels folds nearby levels of the same type into one, averaging the
// price and accumulating strength.
func mergeLevels(raw []model.SupportResistanceLevel, tolerance float64) []model.SupportResistanceLevel {
	merged := make([]model.SupportResistanceLevel, 0, len(raw))
	for _, lvl := range raw {
		found := false
		for i := range merged {
			if merged[i].Type != lvl.Type {
				continue
			}
			if math.Abs(merged[i].Price-lvl.Price) <= tolerance*merged[i].Price {
				merged[i].Price = (merged[i].Price + lvl.Price) / 2.0
				merged[i].Strength += lvl.Strength
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, lvl)
		}
	}
	return merged
}

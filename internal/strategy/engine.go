package strategy

import (
	"sort"
	"time"

	"github.com/yourorg/signal-engine/internal/model"
)

// evaluators is the closed strategy set, in evaluation order matching
// model.StrategyIDs.
var evaluators = []Evaluator{
	GapAndGo,
	MomentumBreakout,
	VWAPReclaim,
	FirstCandleHold,
	NewsCatalyst,
}

// EvaluateAll runs every strategy against the same snapshot and returns the
// raw candidates, one slot per strategy; a nil slot means no signal.
func EvaluateAll(in Input, now time.Time) []*model.TradeSetup {
	out := make([]*model.TradeSetup, len(evaluators))
	for i, eval := range evaluators {
		out[i] = eval(in, now)
	}
	return out
}

// Rank drops nil candidates and orders the survivors by conviction (A > B > C)
// and then by risk/reward, descending. The sort is stable otherwise.
func Rank(candidates []*model.TradeSetup) []model.TradeSetup {
	ranked := make([]model.TradeSetup, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			ranked = append(ranked, *c)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		ra := model.ConvictionRank(ranked[a].Conviction)
		rb := model.ConvictionRank(ranked[b].Conviction)
		if ra != rb {
			return ra > rb
		}
		return ranked[a].RiskReward > ranked[b].RiskReward
	})
	return ranked
}

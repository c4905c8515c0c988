package backtest

import (
	"math"

	"github.com/yourorg/signal-engine/internal/levels"
	"github.com/yourorg/signal-engine/internal/model"
	"github.com/yourorg/signal-engine/internal/strategy"
	"github.com/yourorg/signal-engine/internal/validator"
)

// Default replay tuning
const (
	DefaultMinLookback = 30
	DefaultMaxHold     = 20
)

// Config tunes a replay run. Zero values fall back to the defaults.
type Config struct {
	MinLookback int
	MaxHold     int
}

// Run replays the strategy engine bar by bar over a historical series and
// simulates each selected setup forward to a win, loss or timeout.
//
// Two behaviors are inherited from the live scanner and kept deliberately:
// the same trailing window is fed to all three timeframe slots the evaluators
// expect, and when a single bar touches both the target and the stop the
// target is checked first (optimistic fill). Changing either changes
// historical results.
//
// Trades are strictly sequential: a new setup is only considered after the
// previous trade has exited. Entries fill at the next bar's open, so the last
// bar never opens a trade. A series shorter than the minimum lookback yields
// a result with zero trades.
func Run(candles []model.Candle, symbol, timeframe, strategyFilter string, cfg Config) model.BacktestResult {
	if cfg.MinLookback <= 0 {
		cfg.MinLookback = DefaultMinLookback
	}
	if cfg.MaxHold <= 0 {
		cfg.MaxHold = DefaultMaxHold
	}

	res := model.BacktestResult{
		Symbol:         symbol,
		Timeframe:      timeframe,
		StrategyFilter: strategyFilter,
		Trades:         []model.BacktestTrade{},
	}

	if len(candles) <= cfg.MinLookback {
		aggregate(&res)
		return res
	}

	i := cfg.MinLookback
	for i < len(candles)-1 {
		setup := selectSetup(candles, i, timeframe, strategyFilter, cfg)
		if setup == nil {
			i++
			continue
		}

		trade, exitIdx := simulate(candles, i, setup, cfg.MaxHold)
		res.Trades = append(res.Trades, trade)
		i = exitIdx + 1
	}

	aggregate(&res)
	return res
}

// selectSetup rebuilds the live pipeline at bar i: a synthetic quote from the
// bar vs its predecessor, levels over the whole history so far, and the
// trailing lookback window reused for every timeframe slot.
func selectSetup(candles []model.Candle, i int, timeframe, strategyFilter string, cfg Config) *model.TradeSetup {
	hist := candles[:i+1]
	quote := syntheticQuote(candles[i], candles[i-1])
	lvls := levels.Detect(hist, timeframe, levels.DefaultLookback, levels.DefaultTolerance)

	window := hist
	if len(window) > cfg.MinLookback {
		window = window[len(window)-cfg.MinLookback:]
	}

	in := strategy.Input{
		Quote:      quote,
		Candles1m:  window,
		Candles5m:  window,
		Candles15m: window,
		Levels:     lvls,
	}

	candidates := strategy.EvaluateAll(in, candles[i].Time)
	valid := candidates[:0]
	for _, c := range candidates {
		if c == nil || validator.ValidateSetup(c) != nil {
			continue
		}
		valid = append(valid, c)
	}

	if strategyFilter != "" {
		for _, c := range valid {
			if c.StrategyID == strategyFilter {
				return c
			}
		}
		return nil
	}

	ranked := strategy.Rank(valid)
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}

// simulate fills the setup at the next bar's open and walks forward up to
// maxHold bars. Target before stop within the same bar, mirrored for shorts;
// neither hit closes the trade at the last scanned bar's close as a timeout.
func simulate(candles []model.Candle, i int, setup *model.TradeSetup, maxHold int) (model.BacktestTrade, int) {
	entryIdx := i + 1
	entry := candles[entryIdx].Open

	end := entryIdx + maxHold - 1
	if end > len(candles)-1 {
		end = len(candles) - 1
	}

	exitIdx := end
	exitPrice := candles[end].Close
	outcome := model.OutcomeTimeout

scan:
	for j := entryIdx; j <= end; j++ {
		bar := candles[j]
		if setup.Direction == model.DirectionLong {
			switch {
			case bar.High >= setup.Target2:
				exitIdx, exitPrice, outcome = j, setup.Target2, model.OutcomeWin
				break scan
			case bar.Low <= setup.StopLoss:
				exitIdx, exitPrice, outcome = j, setup.StopLoss, model.OutcomeLoss
				break scan
			}
		} else {
			switch {
			case bar.Low <= setup.Target2:
				exitIdx, exitPrice, outcome = j, setup.Target2, model.OutcomeWin
				break scan
			case bar.High >= setup.StopLoss:
				exitIdx, exitPrice, outcome = j, setup.StopLoss, model.OutcomeLoss
				break scan
			}
		}
	}

	pnl := pnlPercent(entry, exitPrice, setup.Direction)
	trade := model.BacktestTrade{
		EntryTime:  candles[entryIdx].Time,
		ExitTime:   candles[exitIdx].Time,
		EntryPrice: entry,
		ExitPrice:  exitPrice,
		Direction:  setup.Direction,
		Target:     setup.Target2,
		Stop:       setup.StopLoss,
		Outcome:    outcome,
		PnlPercent: pnl,
		RR:         realizedRR(entry, setup.StopLoss, pnl),
		StrategyID: setup.StrategyID,
	}
	return trade, exitIdx
}

func syntheticQuote(bar, prev model.Candle) model.StockQuote {
	change := bar.Close - prev.Close
	changePct := 0.0
	if prev.Close != 0 {
		changePct = change / prev.Close * 100
	}
	return model.StockQuote{
		Price:         bar.Close,
		Change:        change,
		ChangePercent: changePct,
		Open:          bar.Open,
		High:          bar.High,
		Low:           bar.Low,
		PrevClose:     prev.Close,
		Session:       model.SessionRegular,
		Timestamp:     bar.Time,
	}
}

// pnlPercent is the direction-aware percentage move from entry to exit.
func pnlPercent(entry, exit float64, dir model.Direction) float64 {
	if entry == 0 {
		return 0
	}
	move := exit - entry
	if dir == model.DirectionShort {
		move = entry - exit
	}
	return round2(move / entry * 100)
}

// realizedRR is |pnl%| over the entry-to-stop risk%, 0 when the risk is 0.
func realizedRR(entry, stop, pnlPct float64) float64 {
	if entry == 0 {
		return 0
	}
	riskPct := math.Abs(entry-stop) / entry * 100
	if riskPct == 0 {
		return 0
	}
	return round2(math.Abs(pnlPct) / riskPct)
}

// aggregate fills the run statistics: win rate, total PnL, average realized
// RR and the largest peak-to-trough dip in cumulative PnL across the trade
// sequence.
func aggregate(res *model.BacktestResult) {
	for _, t := range res.Trades {
		switch t.Outcome {
		case model.OutcomeWin:
			res.Wins++
		case model.OutcomeLoss:
			res.Losses++
		}
	}
	res.TotalTrades = len(res.Trades)
	if res.TotalTrades == 0 {
		return
	}

	var totalPnl, totalRR, cum, peak, maxDD float64
	for _, t := range res.Trades {
		totalPnl += t.PnlPercent
		totalRR += t.RR
		cum += t.PnlPercent
		if cum > peak {
			peak = cum
		}
		if dd := peak - cum; dd > maxDD {
			maxDD = dd
		}
	}

	res.WinRate = round1(float64(res.Wins) / float64(res.TotalTrades) * 100)
	res.TotalPnlPercent = round2(totalPnl)
	res.AvgRR = round2(totalRR / float64(res.TotalTrades))
	res.MaxDrawdown = round2(maxDD)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

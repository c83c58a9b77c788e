package backtest

import "signal-systemv1/internal/model"

// summarize computes the aggregate statistics for a completed run.
func summarize(initial, final float64, trades []model.ClosedTrade, equity []model.EquityPoint) model.BacktestResult {
	wins := 0
	var grossProfit, grossLoss float64
	for _, t := range trades {
		if t.Result == model.TradeWin {
			wins++
		}
		if t.Profit > 0 {
			grossProfit += t.Profit
		} else {
			grossLoss += -t.Profit
		}
	}

	winRate := 0.0
	if len(trades) > 0 {
		winRate = float64(wins) / float64(len(trades)) * 100
	}

	// Guard the divisor so an all-winning run yields a finite factor.
	divisor := grossLoss
	if divisor < 1 {
		divisor = 1
	}

	return model.BacktestResult{
		InitialBalance: initial,
		FinalBalance:   final,
		Trades:         trades,
		Equity:         equity,
		WinRate:        winRate,
		ProfitFactor:   grossProfit / divisor,
		MaxDrawdown:    maxDrawdown(equity),
	}
}

// maxDrawdown scans the equity curve left to right tracking the running
// peak, returning the largest peak-to-trough decline as a percent of the
// peak. 0 for a monotonically non-decreasing curve.
func maxDrawdown(equity []model.EquityPoint) float64 {
	var peak, worst float64
	for _, p := range equity {
		if p.Value > peak {
			peak = p.Value
		}
		if peak > 0 {
			dd := (peak - p.Value) / peak * 100
			if dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

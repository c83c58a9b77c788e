package signal

import (
	"signal-systemv1/internal/indicator"
	"signal-systemv1/internal/model"
)

// Trend is a directional hint from a higher timeframe.
type Trend string

const (
	TrendUp   Trend = "UP"
	TrendDown Trend = "DOWN"
	TrendFlat Trend = "FLAT"
)

// Trends carries optional higher-timeframe trend hints. Empty fields mean
// the timeframe was not evaluated and count toward nothing.
type Trends struct {
	M5  Trend `json:"m5,omitempty"`
	M15 Trend `json:"m15,omitempty"`
	M30 Trend `json:"m30,omitempty"`
}

// TrendFrom classifies a series as UP, DOWN, or FLAT by comparing its
// short and long EMAs. Used to derive higher-timeframe hints from
// resampled candles.
func TrendFrom(series model.Series, short, long int) Trend {
	if len(series) < long {
		return TrendFlat
	}
	closes := series.Closes()
	fast := indicator.EMA(closes, short)
	slow := indicator.EMA(closes, long)
	switch {
	case fast > slow:
		return TrendUp
	case fast < slow:
		return TrendDown
	default:
		return TrendFlat
	}
}

// agreeing counts how many provided timeframes agree with the direction.
func (t Trends) agreeing(d model.Direction) int {
	want := TrendUp
	if d == model.DirectionSell {
		want = TrendDown
	}
	n := 0
	for _, tr := range []Trend{t.M5, t.M15, t.M30} {
		if tr == want {
			n++
		}
	}
	return n
}

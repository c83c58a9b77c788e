package signal

import (
	"testing"

	"signal-systemv1/internal/model"
)

func TestTrendFrom_Classification(t *testing.T) {
	up := trendSeries(30, 100, 2, false)
	down := trendSeries(30, 200, -2, false)

	if got := TrendFrom(up, 9, 21); got != TrendUp {
		t.Errorf("uptrend: got %s, want UP", got)
	}
	if got := TrendFrom(down, 9, 21); got != TrendDown {
		t.Errorf("downtrend: got %s, want DOWN", got)
	}
}

func TestTrendFrom_ShortSeriesIsFlat(t *testing.T) {
	series := trendSeries(10, 100, 2, false)
	if got := TrendFrom(series, 9, 21); got != TrendFlat {
		t.Errorf("short series: got %s, want FLAT", got)
	}
}

func TestTrends_Agreeing(t *testing.T) {
	tr := Trends{M5: TrendUp, M15: TrendDown, M30: TrendUp}
	if got := tr.agreeing(model.DirectionBuy); got != 2 {
		t.Errorf("buy agreement: got %d, want 2", got)
	}
	if got := tr.agreeing(model.DirectionSell); got != 1 {
		t.Errorf("sell agreement: got %d, want 1", got)
	}
	// Unset timeframes count toward nothing.
	if got := (Trends{}).agreeing(model.DirectionBuy); got != 0 {
		t.Errorf("empty trends: got %d, want 0", got)
	}
}

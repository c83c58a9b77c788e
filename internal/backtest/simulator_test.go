package backtest

import (
	"math"
	"testing"
	"time"

	"signal-systemv1/internal/model"
	"signal-systemv1/internal/signal"
)

// ────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────

var t0 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f)", label, got, want, tol)
	}
}

// flatSeries builds n candles pinned at 100 with a 99-101 range.
func flatSeries(n int) model.Series {
	out := make(model.Series, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Candle{
			TS:     t0.Add(time.Duration(i) * time.Minute),
			Open:   100,
			High:   101,
			Low:    99,
			Close:  100,
			Volume: 1000,
		})
	}
	return out
}

// scripted emits a pre-planned signal when the window's last candle matches
// a scheduled timestamp, NEUTRAL otherwise. It stands in for the engine so
// entry and exit mechanics can be exercised deterministically.
type scripted struct {
	signals map[time.Time]model.Signal
}

func (s scripted) Evaluate(series model.Series, _ float64, _ signal.Trends) model.Signal {
	last, ok := series.Last()
	if !ok {
		return model.Signal{Direction: model.DirectionNeutral}
	}
	if sig, found := s.signals[last.TS]; found {
		return sig
	}
	return model.Signal{Direction: model.DirectionNeutral}
}

func testConfig() Config {
	return Config{
		InitialBalance: 10000,
		EntryThreshold: 50,
		RiskPct:        0.02,
		Warmup:         2,
		Window:         5,
	}
}

func buyAt(ts time.Time) map[time.Time]model.Signal {
	return map[time.Time]model.Signal{
		ts: {Direction: model.DirectionBuy, Confidence: 80, StopLoss: 95, TakeProfit: 105},
	}
}

// ────────────────────────────────────────────────────────────
// Entries and exits
// ────────────────────────────────────────────────────────────

func TestRun_TakeProfitWin(t *testing.T) {
	// Entry at candle 3 close 100, stop 95, target 105.
	// Size = 10000*0.02/5 = 40. Candle 6 prints a 106 high with the low
	// holding above the stop: exit at 105 for +200.
	series := flatSeries(10)
	series[6].High = 106

	sim, err := New(scripted{buyAt(series[3].TS)}, testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res := sim.Run(series)

	if len(res.Trades) != 1 {
		t.Fatalf("trades: got %d, want 1", len(res.Trades))
	}
	tr := res.Trades[0]
	if tr.Result != model.TradeWin {
		t.Errorf("result: got %s, want WIN", tr.Result)
	}
	assertClose(t, "exit price", tr.ExitPrice, 105, 1e-9)
	assertClose(t, "profit", tr.Profit, 200, 1e-9)
	if !tr.ExitTime.Equal(series[6].TS) {
		t.Errorf("exit time: got %v, want %v", tr.ExitTime, series[6].TS)
	}
	assertClose(t, "final balance", res.FinalBalance, 10200, 1e-9)
	assertClose(t, "win rate", res.WinRate, 100, 1e-9)
	assertClose(t, "profit factor", res.ProfitFactor, 200, 1e-9)
	// Equity never dips: no drawdown.
	assertClose(t, "max drawdown", res.MaxDrawdown, 0, 1e-9)
}

func TestRun_StopCheckedBeforeTarget(t *testing.T) {
	// Candle 6 spans both levels (high 106, low 94). The conservative
	// fill takes the stop: exit at 95 for -200.
	series := flatSeries(10)
	series[6].High = 106
	series[6].Low = 94

	sim, _ := New(scripted{buyAt(series[3].TS)}, testConfig())
	res := sim.Run(series)

	if len(res.Trades) != 1 {
		t.Fatalf("trades: got %d, want 1", len(res.Trades))
	}
	tr := res.Trades[0]
	if tr.Result != model.TradeLoss {
		t.Errorf("result: got %s, want LOSS", tr.Result)
	}
	assertClose(t, "exit price", tr.ExitPrice, 95, 1e-9)
	assertClose(t, "profit", tr.Profit, -200, 1e-9)
	assertClose(t, "final balance", res.FinalBalance, 9800, 1e-9)
	assertClose(t, "win rate", res.WinRate, 0, 1e-9)
	// Equity drops from the 10000 peak to 9800: 2% drawdown.
	assertClose(t, "max drawdown", res.MaxDrawdown, 2.0, 1e-6)
}

func TestRun_ShortExitMirrored(t *testing.T) {
	// Short from 100 with stop 105 and target 95; candle 6 trades down to
	// 94 without touching the stop. Exit at 95 for +200.
	series := flatSeries(10)
	series[6].Low = 94

	signals := map[time.Time]model.Signal{
		series[3].TS: {Direction: model.DirectionSell, Confidence: 80, StopLoss: 105, TakeProfit: 95},
	}
	sim, _ := New(scripted{signals}, testConfig())
	res := sim.Run(series)

	if len(res.Trades) != 1 {
		t.Fatalf("trades: got %d, want 1", len(res.Trades))
	}
	tr := res.Trades[0]
	if tr.Result != model.TradeWin {
		t.Errorf("result: got %s, want WIN", tr.Result)
	}
	assertClose(t, "exit price", tr.ExitPrice, 95, 1e-9)
	assertClose(t, "profit", tr.Profit, 200, 1e-9)
}

func TestRun_SinglePositionAtATime(t *testing.T) {
	// Signals fire on two consecutive candles, but the second arrives
	// while the first position is still open and is ignored. Nothing ever
	// touches a level, so the position force-closes at the final close.
	series := flatSeries(10)
	signals := buyAt(series[3].TS)
	signals[series[4].TS] = signals[series[3].TS]

	sim, _ := New(scripted{signals}, testConfig())
	res := sim.Run(series)

	if len(res.Trades) != 1 {
		t.Fatalf("trades: got %d, want 1", len(res.Trades))
	}
	tr := res.Trades[0]
	if !tr.EntryTime.Equal(series[3].TS) {
		t.Errorf("entry time: got %v, want %v", tr.EntryTime, series[3].TS)
	}
	if !tr.ExitTime.Equal(series[9].TS) {
		t.Errorf("force-close time: got %v, want %v", tr.ExitTime, series[9].TS)
	}
	assertClose(t, "force-close price", tr.ExitPrice, 100, 1e-9)
	assertClose(t, "profit", tr.Profit, 0, 1e-9)
	assertClose(t, "final balance", res.FinalBalance, 10000, 1e-9)
}

func TestRun_ReentryAfterExit(t *testing.T) {
	// First trade wins at candle 5, a second signal at candle 7 opens a
	// fresh position that force-closes at the end.
	series := flatSeries(12)
	series[5].High = 106

	signals := buyAt(series[3].TS)
	signals[series[7].TS] = model.Signal{
		Direction: model.DirectionBuy, Confidence: 80, StopLoss: 95, TakeProfit: 105,
	}
	sim, _ := New(scripted{signals}, testConfig())
	res := sim.Run(series)

	if len(res.Trades) != 2 {
		t.Fatalf("trades: got %d, want 2", len(res.Trades))
	}
	if res.Trades[0].Result != model.TradeWin {
		t.Errorf("first trade: got %s, want WIN", res.Trades[0].Result)
	}
	if !res.Trades[1].EntryTime.Equal(series[7].TS) {
		t.Errorf("second entry: got %v, want %v", res.Trades[1].EntryTime, series[7].TS)
	}
	assertClose(t, "win rate", res.WinRate, 50, 1e-9)
}

// ────────────────────────────────────────────────────────────
// Degenerate inputs and statistics
// ────────────────────────────────────────────────────────────

func TestRun_SeriesShorterThanWarmup(t *testing.T) {
	sim, _ := New(scripted{}, DefaultConfig())
	res := sim.Run(flatSeries(10)) // warmup is 50

	if len(res.Trades) != 0 {
		t.Errorf("trades: got %d, want 0", len(res.Trades))
	}
	assertClose(t, "final balance", res.FinalBalance, res.InitialBalance, 1e-9)
	assertClose(t, "win rate", res.WinRate, 0, 1e-9)
	assertClose(t, "profit factor", res.ProfitFactor, 0, 1e-9)
	assertClose(t, "max drawdown", res.MaxDrawdown, 0, 1e-9)
	if len(res.Equity) != 0 {
		t.Errorf("equity points: got %d, want 0", len(res.Equity))
	}
}

func TestRun_EmptySeries(t *testing.T) {
	sim, _ := New(scripted{}, DefaultConfig())
	res := sim.Run(nil)
	if len(res.Trades) != 0 || res.FinalBalance != res.InitialBalance {
		t.Errorf("empty series: got %+v", res)
	}
}

func TestRun_EquityCurveCoversEveryCandle(t *testing.T) {
	series := flatSeries(10)
	sim, _ := New(scripted{}, testConfig())
	res := sim.Run(series)

	// One point per processed candle, timestamps strictly increasing.
	if want := len(series) - testConfig().Warmup; len(res.Equity) != want {
		t.Fatalf("equity points: got %d, want %d", len(res.Equity), want)
	}
	for i := 1; i < len(res.Equity); i++ {
		if !res.Equity[i].TS.After(res.Equity[i-1].TS) {
			t.Fatalf("equity timestamps not increasing at %d", i)
		}
	}
}

func TestMaxDrawdown_Bounds(t *testing.T) {
	curve := []model.EquityPoint{
		{TS: t0, Value: 10000},
		{TS: t0.Add(time.Minute), Value: 12000},
		{TS: t0.Add(2 * time.Minute), Value: 9000},
		{TS: t0.Add(3 * time.Minute), Value: 11000},
	}
	// Peak 12000 to trough 9000: 25%.
	assertClose(t, "drawdown", maxDrawdown(curve), 25, 1e-9)

	monotonic := []model.EquityPoint{
		{TS: t0, Value: 10000},
		{TS: t0.Add(time.Minute), Value: 10500},
		{TS: t0.Add(2 * time.Minute), Value: 11000},
	}
	assertClose(t, "monotonic drawdown", maxDrawdown(monotonic), 0, 1e-9)
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero balance", func(c *Config) { c.InitialBalance = 0 }},
		{"threshold above 100", func(c *Config) { c.EntryThreshold = 101 }},
		{"risk pct zero", func(c *Config) { c.RiskPct = 0 }},
		{"risk pct full", func(c *Config) { c.RiskPct = 1 }},
		{"negative warmup", func(c *Config) { c.Warmup = -1 }},
		{"zero window", func(c *Config) { c.Window = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if _, err := New(scripted{}, cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
	if _, err := New(scripted{}, DefaultConfig()); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

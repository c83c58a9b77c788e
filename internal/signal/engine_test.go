package signal

import (
	"math"
	"strings"
	"testing"
	"time"

	"signal-systemv1/internal/model"
)

// ────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f)", label, got, want, tol)
	}
}

// trendSeries builds n candles whose closes move by step per candle, with
// a fixed high/low spread so the ATR is deterministic. surge switches the
// last 10 candles to triple volume so the volume confirmation fires.
func trendSeries(n int, start, step float64, surge bool) model.Series {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	out := make(model.Series, 0, n)
	for i := 0; i < n; i++ {
		c := start + step*float64(i)
		vol := int64(1000)
		if surge && i >= n-10 {
			vol = 3000
		}
		out = append(out, model.Candle{
			TS:     ts.Add(time.Duration(i) * time.Minute),
			Open:   c - step,
			High:   c + 4,
			Low:    c - 4,
			Close:  c,
			Volume: vol,
		})
	}
	return out
}

func mustEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func hasReason(reasons []string, substr string) bool {
	for _, r := range reasons {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}

// ────────────────────────────────────────────────────────────
// Evaluation
// ────────────────────────────────────────────────────────────

func TestEvaluate_UptrendProducesBuy(t *testing.T) {
	// Steep uptrend with a late volume surge and positive sentiment. The
	// MACD, EMA crossover, SMA trend, volume, and sentiment components all
	// land on the buy side; only the overbought RSI opposes.
	e := mustEngine(t, DefaultConfig())
	series := trendSeries(60, 100, 3, true)

	sig := e.Evaluate(series, 0.5, Trends{})

	if sig.Direction != model.DirectionBuy {
		t.Fatalf("direction: got %s, want BUY (reasons: %v)", sig.Direction, sig.Reasons)
	}
	if sig.Confidence < 70 {
		t.Errorf("confidence %.1f below entry threshold", sig.Confidence)
	}
	if sig.Confidence > 100 {
		t.Errorf("confidence %.1f above 100", sig.Confidence)
	}
	price := series[len(series)-1].Close
	if !(sig.StopLoss < price && price < sig.TakeProfit) {
		t.Errorf("risk levels not bracketing price: stop=%.2f price=%.2f tp=%.2f",
			sig.StopLoss, price, sig.TakeProfit)
	}
	if sig.PositionSize <= 0 {
		t.Errorf("position size not positive: %.4f", sig.PositionSize)
	}
	if sig.RiskRewardRatio <= 1 {
		t.Errorf("risk/reward %.2f not above 1", sig.RiskRewardRatio)
	}
	if !hasReason(sig.Reasons, "EMA9 above EMA21") {
		t.Errorf("missing EMA crossover reason: %v", sig.Reasons)
	}
	if !hasReason(sig.Reasons, "volume") {
		t.Errorf("missing volume confirmation reason: %v", sig.Reasons)
	}
}

func TestEvaluate_DowntrendProducesSell(t *testing.T) {
	e := mustEngine(t, DefaultConfig())
	series := trendSeries(60, 277, -3, true)

	sig := e.Evaluate(series, -0.5, Trends{})

	if sig.Direction != model.DirectionSell {
		t.Fatalf("direction: got %s, want SELL (reasons: %v)", sig.Direction, sig.Reasons)
	}
	if sig.Confidence < 70 || sig.Confidence > 100 {
		t.Errorf("confidence %.1f out of [70,100]", sig.Confidence)
	}
	price := series[len(series)-1].Close
	if !(sig.TakeProfit < price && price < sig.StopLoss) {
		t.Errorf("risk levels not mirrored: stop=%.2f price=%.2f tp=%.2f",
			sig.StopLoss, price, sig.TakeProfit)
	}
	if sig.TakeProfit <= 0 {
		t.Errorf("take profit not positive: %.4f", sig.TakeProfit)
	}
}

func TestEvaluate_WeakSignalIsNeutral(t *testing.T) {
	// Same uptrend but flat volume: the 20-point volume component never
	// fires and the score stays below the 70 floor.
	e := mustEngine(t, DefaultConfig())
	series := trendSeries(60, 100, 3, false)

	sig := e.Evaluate(series, 0.5, Trends{})

	if sig.Direction != model.DirectionNeutral {
		t.Fatalf("direction: got %s, want NEUTRAL (confidence %.1f)", sig.Direction, sig.Confidence)
	}
	if sig.Confidence <= 0 || sig.Confidence >= 70 {
		t.Errorf("confidence %.1f out of (0,70)", sig.Confidence)
	}
	// A neutral signal carries no trade parameters.
	if sig.StopLoss != 0 || sig.TakeProfit != 0 || sig.PositionSize != 0 || sig.RiskRewardRatio != 0 {
		t.Errorf("neutral signal carries risk fields: %+v", sig)
	}
	if !hasReason(sig.Reasons, "below minimum") {
		t.Errorf("missing threshold reason: %v", sig.Reasons)
	}
	if sig.Actionable() {
		t.Error("neutral signal reported as actionable")
	}
}

func TestEvaluate_EmptySeries(t *testing.T) {
	e := mustEngine(t, DefaultConfig())
	sig := e.Evaluate(nil, 0, Trends{})

	if sig.Direction != model.DirectionNeutral {
		t.Errorf("direction: got %s, want NEUTRAL", sig.Direction)
	}
	assertClose(t, "confidence", sig.Confidence, 0, 1e-9)
	if !hasReason(sig.Reasons, "no candle data") {
		t.Errorf("missing reason: %v", sig.Reasons)
	}
}

func TestEvaluate_TimeframeAgreementAnnotates(t *testing.T) {
	e := mustEngine(t, DefaultConfig())
	series := trendSeries(60, 100, 3, true)

	with := e.Evaluate(series, 0.5, Trends{M5: TrendUp, M15: TrendUp})
	without := e.Evaluate(series, 0.5, Trends{})

	if !hasReason(with.Reasons, "2/3 higher timeframes agree") {
		t.Errorf("missing agreement reason: %v", with.Reasons)
	}
	// Agreement is informational: the confidence is untouched.
	assertClose(t, "confidence unchanged", with.Confidence, without.Confidence, 1e-9)
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := mustEngine(t, DefaultConfig())
	series := trendSeries(60, 100, 3, true)

	a := e.Evaluate(series, 0.5, Trends{})
	b := e.Evaluate(series, 0.5, Trends{})
	assertClose(t, "confidence", a.Confidence, b.Confidence, 0)
	if a.Direction != b.Direction || len(a.Reasons) != len(b.Reasons) {
		t.Errorf("evaluation not deterministic: %+v vs %+v", a, b)
	}
}

// ────────────────────────────────────────────────────────────
// Configuration
// ────────────────────────────────────────────────────────────

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rsi period", func(c *Config) { c.RSIPeriod = 0 }},
		{"negative sma period", func(c *Config) { c.SMAPeriod = -1 }},
		{"macd fast not below slow", func(c *Config) { c.MACDFast = 26 }},
		{"ema short not below long", func(c *Config) { c.EMAShort = 21 }},
		{"rsi bounds inverted", func(c *Config) { c.RSIOversold = 80 }},
		{"rsi overbought out of range", func(c *Config) { c.RSIOverbought = 100 }},
		{"zero bb std dev", func(c *Config) { c.BBStdDev = 0 }},
		{"strength above 100", func(c *Config) { c.MinimumSignalStrength = 101 }},
		{"risk pct zero", func(c *Config) { c.RiskPctPerTrade = 0 }},
		{"risk pct full", func(c *Config) { c.RiskPctPerTrade = 1 }},
		{"zero balance", func(c *Config) { c.AccountBalance = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNew_AcceptsDefaultConfig(t *testing.T) {
	if _, err := New(DefaultConfig()); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

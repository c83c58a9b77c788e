// Package synth generates synthetic OHLCV candles from an explicitly seeded
// random walk. Backtests over synthetic data are reproducible: the same
// seed always produces the same series. There is no implicit global
// randomness anywhere in this package.
package synth

import (
	"math"
	"math/rand"
	"time"

	"signal-systemv1/internal/model"
)

// Config holds the generator parameters.
type Config struct {
	Seed       int64         // PRNG seed
	StartPrice float64       // first candle open
	Drift      float64       // per-candle expected return (e.g. 0.0001)
	Volatility float64       // per-candle return stddev (e.g. 0.005)
	BaseVolume int64         // average volume per candle
	Start      time.Time     // timestamp of the first candle
	Interval   time.Duration // candle spacing
}

// DefaultConfig returns a reasonable parameter set for a liquid instrument
// on a one-minute timeframe.
func DefaultConfig(seed int64) Config {
	return Config{
		Seed:       seed,
		StartPrice: 100,
		Drift:      0,
		Volatility: 0.004,
		BaseVolume: 1000,
		Start:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Interval:   time.Minute,
	}
}

// Generator produces candles one at a time from a seeded random walk.
type Generator struct {
	cfg   Config
	rng   *rand.Rand
	price float64
	ts    time.Time
}

// New creates a Generator. Zero-valued config fields fall back to the
// defaults for that field.
func New(cfg Config) *Generator {
	def := DefaultConfig(cfg.Seed)
	if cfg.StartPrice <= 0 {
		cfg.StartPrice = def.StartPrice
	}
	if cfg.Volatility <= 0 {
		cfg.Volatility = def.Volatility
	}
	if cfg.BaseVolume <= 0 {
		cfg.BaseVolume = def.BaseVolume
	}
	if cfg.Start.IsZero() {
		cfg.Start = def.Start
	}
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	return &Generator{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		price: cfg.StartPrice,
		ts:    cfg.Start,
	}
}

// Next produces the next candle of the walk.
func (g *Generator) Next() model.Candle {
	open := g.price
	ret := g.cfg.Drift + g.rng.NormFloat64()*g.cfg.Volatility
	closePrice := open * math.Exp(ret)

	// Intra-candle range: wicks extend beyond the body proportionally to
	// the volatility draw.
	wick := math.Abs(g.rng.NormFloat64()) * g.cfg.Volatility * open
	high := math.Max(open, closePrice) + wick
	low := math.Min(open, closePrice) - wick
	if low <= 0 {
		low = math.Min(open, closePrice) * 0.99
	}

	// Volume swells with the size of the move.
	move := math.Abs(ret) / g.cfg.Volatility
	volume := int64(float64(g.cfg.BaseVolume) * (0.5 + g.rng.Float64() + move/2))

	c := model.Candle{
		TS:     g.ts,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}
	g.price = closePrice
	g.ts = g.ts.Add(g.cfg.Interval)
	return c
}

// Series produces the next n candles as a model.Series.
func (g *Generator) Series(n int) model.Series {
	out := make(model.Series, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Next())
	}
	return out
}

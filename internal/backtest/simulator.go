// Package backtest replays a candle series through the decision engine,
// simulating entries and stop/target exits with at most one open position,
// and aggregates performance statistics.
package backtest

import (
	"fmt"
	"math"

	"signal-systemv1/internal/model"
	"signal-systemv1/internal/signal"
)

// Config holds the simulator parameters.
type Config struct {
	InitialBalance float64 // starting account balance
	EntryThreshold float64 // minimum confidence (0-100) to open a position
	RiskPct        float64 // fraction of balance risked per trade (0-1)
	Warmup         int     // candles skipped before the first evaluation
	Window         int     // trailing window length handed to the engine
	Sentiment      float64 // fixed sentiment score applied to every evaluation
}

// DefaultConfig returns the standard simulator configuration. The warm-up
// covers the slowest indicator (MACD slow + signal seeding).
func DefaultConfig() Config {
	return Config{
		InitialBalance: 10000,
		EntryThreshold: 70,
		RiskPct:        0.02,
		Warmup:         50,
		Window:         100,
	}
}

// Validate checks the simulator configuration.
func (c Config) Validate() error {
	if c.InitialBalance <= 0 {
		return fmt.Errorf("backtest config: initial balance must be positive, got %.2f", c.InitialBalance)
	}
	if c.EntryThreshold < 0 || c.EntryThreshold > 100 {
		return fmt.Errorf("backtest config: entry threshold must be in [0,100], got %.1f", c.EntryThreshold)
	}
	if c.RiskPct <= 0 || c.RiskPct >= 1 {
		return fmt.Errorf("backtest config: risk pct must be in (0,1), got %.4f", c.RiskPct)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("backtest config: warmup must be non-negative, got %d", c.Warmup)
	}
	if c.Window <= 0 {
		return fmt.Errorf("backtest config: window must be positive, got %d", c.Window)
	}
	return nil
}

// Evaluator produces a signal for a candle window. *signal.Engine is the
// production implementation.
type Evaluator interface {
	Evaluate(series model.Series, sentiment float64, trends signal.Trends) model.Signal
}

// Simulator drives a candle series through the engine candle by candle.
// State machine per run: NoPosition → Open → NoPosition, repeating. A fresh
// Simulator is cheap; create one per symbol for concurrent runs.
type Simulator struct {
	engine Evaluator
	cfg    Config
}

// New creates a Simulator, validating the configuration up front.
func New(engine Evaluator, cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{engine: engine, cfg: cfg}, nil
}

// Run replays the series and returns the aggregated result. A series too
// short to evaluate yields a zero-trade result with the balance unchanged,
// not an error.
func (s *Simulator) Run(series model.Series) model.BacktestResult {
	balance := s.cfg.InitialBalance
	var open *model.Trade
	var trades []model.ClosedTrade
	var equity []model.EquityPoint

	for i := s.cfg.Warmup; i < len(series); i++ {
		candle := series[i]

		// Exit check against this candle's range. The stop is checked
		// before the target: when both trigger inside one candle the
		// conservative fill is assumed.
		if open != nil {
			if exitPrice, hit := exitLevel(open, candle); hit {
				closed := open.Close(exitPrice, candle.TS)
				balance += closed.Profit
				trades = append(trades, closed)
				open = nil
			}
		}

		// Entry check on the trailing window ending here.
		if open == nil {
			window := series[:i+1].Tail(s.cfg.Window)
			sig := s.engine.Evaluate(window, s.cfg.Sentiment, signal.Trends{})
			if sig.Actionable() && sig.Confidence > s.cfg.EntryThreshold {
				riskPerUnit := math.Abs(candle.Close - sig.StopLoss)
				if riskPerUnit > 0 {
					open = &model.Trade{
						Direction:  sig.Direction,
						EntryPrice: candle.Close,
						EntryTime:  candle.TS,
						StopLoss:   sig.StopLoss,
						TakeProfit: sig.TakeProfit,
						Size:       balance * s.cfg.RiskPct / riskPerUnit,
					}
				}
			}
		}

		value := balance
		if open != nil {
			value += open.UnrealizedPnL(candle.Close)
		}
		equity = append(equity, model.EquityPoint{TS: candle.TS, Value: value})
	}

	// Force-close anything still open at the last close price.
	if open != nil {
		last := series[len(series)-1]
		closed := open.Close(last.Close, last.TS)
		balance += closed.Profit
		trades = append(trades, closed)
		open = nil
	}

	return summarize(s.cfg.InitialBalance, balance, trades, equity)
}

// exitLevel returns the fill price if the candle's range crossed the
// trade's stop or target.
func exitLevel(t *model.Trade, c model.Candle) (float64, bool) {
	if t.Direction == model.DirectionBuy {
		if c.Low <= t.StopLoss {
			return t.StopLoss, true
		}
		if c.High >= t.TakeProfit {
			return t.TakeProfit, true
		}
		return 0, false
	}
	// SELL mirrors on high/low.
	if c.High >= t.StopLoss {
		return t.StopLoss, true
	}
	if c.Low <= t.TakeProfit {
		return t.TakeProfit, true
	}
	return 0, false
}

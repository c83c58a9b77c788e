// Package signal combines indicator readings, an optional sentiment score,
// and higher-timeframe trend hints into a directional trading signal with
// confidence, reasons, and risk parameters.
package signal

import (
	"fmt"

	"signal-systemv1/internal/indicator"
)

// Config holds every tunable of the decision engine. Construct with
// DefaultConfig and override; New rejects invalid values up front so the
// evaluation path never has to.
type Config struct {
	RSIPeriod     int     `json:"rsi_period"`
	RSIOverbought float64 `json:"rsi_overbought"`
	RSIOversold   float64 `json:"rsi_oversold"`

	MACDFast   int `json:"macd_fast"`
	MACDSlow   int `json:"macd_slow"`
	MACDSignal int `json:"macd_signal"`

	EMAShort  int `json:"ema_short"`
	EMALong   int `json:"ema_long"`
	SMAPeriod int `json:"sma_period"`

	BBPeriod int     `json:"bb_period"`
	BBStdDev float64 `json:"bb_std_dev"`

	ATRPeriod int `json:"atr_period"`

	// MinimumSignalStrength is the confidence floor (0-100) below which the
	// engine returns NEUTRAL instead of proposing a trade.
	MinimumSignalStrength float64 `json:"minimum_signal_strength"`

	// RiskPctPerTrade is the fraction of the account risked per trade (0-1).
	RiskPctPerTrade float64 `json:"risk_pct_per_trade"`

	// AccountBalance sizes positions: size = balance*risk / stop distance.
	AccountBalance float64 `json:"account_balance"`
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:             14,
		RSIOverbought:         70,
		RSIOversold:           30,
		MACDFast:              12,
		MACDSlow:              26,
		MACDSignal:            9,
		EMAShort:              9,
		EMALong:               21,
		SMAPeriod:             50,
		BBPeriod:              20,
		BBStdDev:              2,
		ATRPeriod:             14,
		MinimumSignalStrength: 70,
		RiskPctPerTrade:       0.02,
		AccountBalance:        10000,
	}
}

// Validate checks the configuration, returning a descriptive error for the
// first violation found.
func (c Config) Validate() error {
	for _, p := range []struct {
		name  string
		value int
	}{
		{"rsi_period", c.RSIPeriod},
		{"macd_fast", c.MACDFast},
		{"macd_slow", c.MACDSlow},
		{"macd_signal", c.MACDSignal},
		{"ema_short", c.EMAShort},
		{"ema_long", c.EMALong},
		{"sma_period", c.SMAPeriod},
		{"bb_period", c.BBPeriod},
		{"atr_period", c.ATRPeriod},
	} {
		if p.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", p.name, p.value)
		}
	}
	if c.MACDFast >= c.MACDSlow {
		return fmt.Errorf("config: macd_fast (%d) must be less than macd_slow (%d)", c.MACDFast, c.MACDSlow)
	}
	if c.EMAShort >= c.EMALong {
		return fmt.Errorf("config: ema_short (%d) must be less than ema_long (%d)", c.EMAShort, c.EMALong)
	}
	if c.RSIOversold <= 0 || c.RSIOverbought >= 100 || c.RSIOversold >= c.RSIOverbought {
		return fmt.Errorf("config: rsi bounds must satisfy 0 < oversold < overbought < 100, got %.1f/%.1f",
			c.RSIOversold, c.RSIOverbought)
	}
	if c.BBStdDev <= 0 {
		return fmt.Errorf("config: bb_std_dev must be positive, got %.2f", c.BBStdDev)
	}
	if c.MinimumSignalStrength < 0 || c.MinimumSignalStrength > 100 {
		return fmt.Errorf("config: minimum_signal_strength must be in [0,100], got %.1f", c.MinimumSignalStrength)
	}
	if c.RiskPctPerTrade <= 0 || c.RiskPctPerTrade >= 1 {
		return fmt.Errorf("config: risk_pct_per_trade must be in (0,1), got %.4f", c.RiskPctPerTrade)
	}
	if c.AccountBalance <= 0 {
		return fmt.Errorf("config: account_balance must be positive, got %.2f", c.AccountBalance)
	}
	return nil
}

// indicatorParams maps the engine config onto the indicator parameter set.
func (c Config) indicatorParams() indicator.Params {
	p := indicator.DefaultParams()
	p.RSIPeriod = c.RSIPeriod
	p.MACDFast = c.MACDFast
	p.MACDSlow = c.MACDSlow
	p.MACDSignal = c.MACDSignal
	p.EMAShort = c.EMAShort
	p.EMALong = c.EMALong
	p.SMAPeriod = c.SMAPeriod
	p.BBPeriod = c.BBPeriod
	p.BBStdDev = c.BBStdDev
	p.ATRPeriod = c.ATRPeriod
	return p
}

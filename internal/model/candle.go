// Package model defines the shared data types for the signal engine:
// candles, indicator snapshots, signals, trades, and backtest results.
//
// All candle series in this repository are ordered oldest-first. Sources
// that deliver newest-first data must reverse at the ingest boundary.
package model

import (
	"encoding/json"
	"time"
)

// Candle represents a single OHLCV candle for one symbol.
type Candle struct {
	TS     time.Time `json:"timestamp"` // candle open time (UTC)
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"` // traded quantity, never negative
}

// JSON returns the JSON-encoded candle (ignoring errors for hot-path usage).
func (c *Candle) JSON() []byte {
	b, _ := json.Marshal(c)
	return b
}

// Series is an ordered candle sequence, oldest-first.
type Series []Candle

// Closes returns the close prices in series order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Close
	}
	return out
}

// Highs returns the high prices in series order.
func (s Series) Highs() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].High
	}
	return out
}

// Lows returns the low prices in series order.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Low
	}
	return out
}

// Volumes returns the volumes in series order as float64 for indicator math.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = float64(s[i].Volume)
	}
	return out
}

// Last returns the most recent candle. ok is false for an empty series.
func (s Series) Last() (Candle, bool) {
	if len(s) == 0 {
		return Candle{}, false
	}
	return s[len(s)-1], true
}

// Tail returns the trailing n candles (the whole series if it is shorter).
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return nil
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

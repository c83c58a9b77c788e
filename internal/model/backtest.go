package model

import "time"

// EquityPoint is one sample of the backtest equity curve, taken once per
// processed candle. Timestamps are strictly increasing within a result.
type EquityPoint struct {
	TS    time.Time `json:"timestamp"`
	Value float64   `json:"value"`
}

// BacktestResult aggregates a full simulator run.
type BacktestResult struct {
	InitialBalance float64       `json:"initialBalance"`
	FinalBalance   float64       `json:"finalBalance"`
	Trades         []ClosedTrade `json:"trades"`
	Equity         []EquityPoint `json:"equity"`
	WinRate        float64       `json:"winRate"`      // percent, 0-100
	ProfitFactor   float64       `json:"profitFactor"` // gross profit / gross loss
	MaxDrawdown    float64       `json:"maxDrawdown"`  // percent, 0-100
}

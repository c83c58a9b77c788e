package model

import "time"

// TradeResult classifies a closed trade.
type TradeResult string

const (
	TradeWin  TradeResult = "WIN"
	TradeLoss TradeResult = "LOSS"
)

// Trade is an open position. It is owned exclusively by the backtest
// simulator and mutable only until it closes.
type Trade struct {
	Direction  Direction `json:"direction"`
	EntryPrice float64   `json:"entryPrice"`
	EntryTime  time.Time `json:"entryTime"`
	StopLoss   float64   `json:"stopLoss"`
	TakeProfit float64   `json:"takeProfit"`
	Size       float64   `json:"size"`
}

// ClosedTrade is an immutable record of a completed trade.
type ClosedTrade struct {
	Trade
	ExitPrice float64     `json:"exitPrice"`
	ExitTime  time.Time   `json:"exitTime"`
	Profit    float64     `json:"profit"`
	Result    TradeResult `json:"result"`
}

// Close settles the trade at the given price and time, realizing profit
// with the sign appropriate for the trade direction.
func (t Trade) Close(exitPrice float64, exitTime time.Time) ClosedTrade {
	profit := (exitPrice - t.EntryPrice) * t.Size
	if t.Direction == DirectionSell {
		profit = (t.EntryPrice - exitPrice) * t.Size
	}
	result := TradeLoss
	if profit > 0 {
		result = TradeWin
	}
	return ClosedTrade{
		Trade:     t,
		ExitPrice: exitPrice,
		ExitTime:  exitTime,
		Profit:    profit,
		Result:    result,
	}
}

// UnrealizedPnL computes the open profit/loss at the given mark price.
func (t *Trade) UnrealizedPnL(price float64) float64 {
	if t.Direction == DirectionSell {
		return (t.EntryPrice - price) * t.Size
	}
	return (price - t.EntryPrice) * t.Size
}

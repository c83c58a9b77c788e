package model

import "encoding/json"

// Direction is the directional call of an evaluation.
type Direction string

const (
	DirectionBuy     Direction = "BUY"
	DirectionSell    Direction = "SELL"
	DirectionNeutral Direction = "NEUTRAL"
)

// Signal is the output of a single engine evaluation. It is created fresh
// per evaluation and never mutated after being returned.
type Signal struct {
	Direction       Direction `json:"direction"`
	Confidence      float64   `json:"confidence"` // 0-100
	Reasons         []string  `json:"reasons"`
	StopLoss        float64   `json:"stopLoss"`
	TakeProfit      float64   `json:"takeProfit"`
	RiskRewardRatio float64   `json:"riskRewardRatio"`
	PositionSize    float64   `json:"positionSize"`
}

// Actionable reports whether the signal proposes a trade.
func (s *Signal) Actionable() bool {
	return s.Direction == DirectionBuy || s.Direction == DirectionSell
}

// JSON returns the JSON-encoded signal (ignoring errors for hot-path usage).
func (s *Signal) JSON() []byte {
	b, _ := json.Marshal(s)
	return b
}

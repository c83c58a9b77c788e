package model

// MACDValue holds the MACD line, its signal line, and their difference.
type MACDValue struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerValue holds the Bollinger Band envelope.
type BollingerValue struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// VolumeValue holds the volume-strength reading.
//
// PriceVolumeCorrelation is a directional-agreement score in [-1,1], not a
// Pearson correlation: it counts same-sign (price delta, volume delta)
// pairs against opposite-sign pairs over the trailing window.
type VolumeValue struct {
	Strength               float64 `json:"strength"` // 0-100
	PriceVolumeCorrelation float64 `json:"priceVolumeCorrelation"`
}

// DivergenceValue flags price/RSI divergence over the lookback window.
type DivergenceValue struct {
	Bullish bool `json:"bullish"`
	Bearish bool `json:"bearish"`
}

// LevelsValue holds the nearest support and resistance cluster prices.
// support < close <= resistance is a soft invariant; sparse data may
// fall back to window extremes instead.
type LevelsValue struct {
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
}

// IndicatorSnapshot is every indicator value computed as of the most recent
// candle of a series. All percent-scaled fields are 0-100; correlation is
// -1..1; prices are in the instrument's quote currency.
type IndicatorSnapshot struct {
	RSI               float64         `json:"rsi"` // 0-100
	MACD              MACDValue       `json:"macd"`
	EMA9              float64         `json:"ema9"`
	EMA21             float64         `json:"ema21"`
	SMA50             float64         `json:"sma50"`
	Bollinger         BollingerValue  `json:"bollinger"`
	ATR               float64         `json:"atr"` // >= 0
	Volume            VolumeValue     `json:"volume"`
	Divergence        DivergenceValue `json:"divergence"`
	SupportResistance LevelsValue     `json:"supportResistance"`
}

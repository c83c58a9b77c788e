package signal

import (
	"fmt"
	"math"

	"signal-systemv1/internal/indicator"
	"signal-systemv1/internal/model"
)

// Indicator weights for the buy/sell scores. Each indicator contributes to
// at most one side per evaluation; the weighted sums land in [0,100].
const (
	weightRSI       = 0.25
	weightMACD      = 0.20
	weightEMACross  = 0.15
	weightSMATrend  = 0.10
	weightVolume    = 0.20
	weightSentiment = 0.10
)

// Volume confirmation and volatility thresholds.
const (
	volumeConfirmRatio = 1.2 // latest/average volume ratio that confirms a move
	highVolatilityPct  = 1.5 // ATR% above which scores are amplified
	lowVolatilityPct   = 0.5 // ATR% below which scores are dampened
)

// Engine evaluates candle series into directional signals using independent
// weighted buy and sell scores. Stateless after construction; one Engine
// may serve many symbols concurrently.
type Engine struct {
	cfg    Config
	params indicator.Params
}

// New creates an Engine, validating the configuration up front.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, params: cfg.indicatorParams()}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Evaluate produces a Signal for the series as of its most recent candle.
// sentiment is a score in [-1,1] from an upstream source (0 = unknown);
// trends carries optional higher-timeframe hints.
//
// Evaluation is total: an empty or short series yields a NEUTRAL signal
// with an explanatory reason, never an error.
func (e *Engine) Evaluate(series model.Series, sentiment float64, trends Trends) model.Signal {
	last, ok := series.Last()
	if !ok {
		return model.Signal{
			Direction:  model.DirectionNeutral,
			Reasons:    []string{"no candle data"},
			Confidence: 0,
		}
	}
	price := last.Close

	snap := indicator.Compute(series, e.params)

	var buyScore, sellScore float64
	var buyReasons, sellReasons []string

	// RSI: full points deep in the oversold/overbought zones, half points
	// in the 10-point approach bands.
	switch {
	case snap.RSI < e.cfg.RSIOversold:
		buyScore += 100 * weightRSI
		buyReasons = append(buyReasons, fmt.Sprintf("RSI %.1f oversold (<%.0f)", snap.RSI, e.cfg.RSIOversold))
	case snap.RSI < e.cfg.RSIOversold+10:
		buyScore += 50 * weightRSI
		buyReasons = append(buyReasons, fmt.Sprintf("RSI %.1f approaching oversold", snap.RSI))
	case snap.RSI > e.cfg.RSIOverbought:
		sellScore += 100 * weightRSI
		sellReasons = append(sellReasons, fmt.Sprintf("RSI %.1f overbought (>%.0f)", snap.RSI, e.cfg.RSIOverbought))
	case snap.RSI > e.cfg.RSIOverbought-10:
		sellScore += 50 * weightRSI
		sellReasons = append(sellReasons, fmt.Sprintf("RSI %.1f approaching overbought", snap.RSI))
	}

	// MACD: histogram sign picks the side; a MACD line on the same side of
	// zero upgrades the half score to full.
	switch {
	case snap.MACD.Histogram > 0 && snap.MACD.MACD > 0:
		buyScore += 100 * weightMACD
		buyReasons = append(buyReasons, "MACD bullish above zero line")
	case snap.MACD.Histogram > 0:
		buyScore += 50 * weightMACD
		buyReasons = append(buyReasons, "MACD crossed above signal line")
	case snap.MACD.Histogram < 0 && snap.MACD.MACD < 0:
		sellScore += 100 * weightMACD
		sellReasons = append(sellReasons, "MACD bearish below zero line")
	case snap.MACD.Histogram < 0:
		sellScore += 50 * weightMACD
		sellReasons = append(sellReasons, "MACD crossed below signal line")
	}

	// EMA crossover.
	if snap.EMA9 > snap.EMA21 {
		buyScore += 100 * weightEMACross
		buyReasons = append(buyReasons, "EMA9 above EMA21")
	} else if snap.EMA9 < snap.EMA21 {
		sellScore += 100 * weightEMACross
		sellReasons = append(sellReasons, "EMA9 below EMA21")
	}

	// Price vs long SMA.
	if price > snap.SMA50 {
		buyScore += 100 * weightSMATrend
		buyReasons = append(buyReasons, "price above SMA50")
	} else if price < snap.SMA50 {
		sellScore += 100 * weightSMATrend
		sellReasons = append(sellReasons, "price below SMA50")
	}

	// Volume confirmation goes to whichever side currently leads: elevated
	// and rising volume backs the move already in progress.
	volumeRatio := snap.Volume.Strength / 50
	if volumeRatio > volumeConfirmRatio && volumeRising(series.Volumes(), e.params.VolPeriod) {
		reason := fmt.Sprintf("volume %.1fx average and rising", volumeRatio)
		if buyScore >= sellScore {
			buyScore += 100 * weightVolume
			buyReasons = append(buyReasons, reason)
		} else {
			sellScore += 100 * weightVolume
			sellReasons = append(sellReasons, reason)
		}
	}

	// Sentiment.
	if sentiment > 0.1 {
		buyScore += 100 * weightSentiment
		buyReasons = append(buyReasons, fmt.Sprintf("positive sentiment %.2f", sentiment))
	} else if sentiment < -0.1 {
		sellScore += 100 * weightSentiment
		sellReasons = append(sellReasons, fmt.Sprintf("negative sentiment %.2f", sentiment))
	}

	// Volatility multiplier: high ATR amplifies both sides, very quiet
	// markets dampen both.
	volatilityPct := 0.0
	if price > 0 {
		volatilityPct = snap.ATR / price * 100
	}
	switch {
	case volatilityPct > highVolatilityPct:
		mult := 1 + (volatilityPct-highVolatilityPct)*0.1
		buyScore *= mult
		sellScore *= mult
	case volatilityPct < lowVolatilityPct:
		buyScore *= 0.9
		sellScore *= 0.9
	}

	direction := model.DirectionBuy
	strength := buyScore
	reasons := buyReasons
	if sellScore > buyScore {
		direction = model.DirectionSell
		strength = sellScore
		reasons = sellReasons
	}
	if strength > 100 {
		strength = 100
	}

	// Divergence is informational: it annotates but does not score.
	if snap.Divergence.Bullish && direction == model.DirectionBuy {
		reasons = append(reasons, "bullish RSI divergence")
	}
	if snap.Divergence.Bearish && direction == model.DirectionSell {
		reasons = append(reasons, "bearish RSI divergence")
	}

	// Higher-timeframe confirmation, likewise informational.
	if n := trends.agreeing(direction); n >= 2 {
		reasons = append(reasons, fmt.Sprintf("%d/3 higher timeframes agree", n))
	}

	if strength < e.cfg.MinimumSignalStrength {
		return model.Signal{
			Direction:  model.DirectionNeutral,
			Confidence: strength,
			Reasons: append(reasons, fmt.Sprintf("strength %.1f below minimum %.1f",
				strength, e.cfg.MinimumSignalStrength)),
		}
	}

	stopLoss, takeProfit := e.riskLevels(direction, price, snap.ATR)
	riskPerUnit := math.Abs(price - stopLoss)
	if riskPerUnit == 0 {
		riskPerUnit = price * 0.01 // degenerate stop distance, clamp to 1%
	}

	return model.Signal{
		Direction:       direction,
		Confidence:      strength,
		Reasons:         reasons,
		StopLoss:        stopLoss,
		TakeProfit:      takeProfit,
		RiskRewardRatio: math.Abs(price-takeProfit) / riskPerUnit,
		PositionSize:    e.cfg.AccountBalance * e.cfg.RiskPctPerTrade / riskPerUnit,
	}
}

// riskLevels derives stop-loss and take-profit from the ATR, widening both
// as volatility rises (the stop faster than the target).
func (e *Engine) riskLevels(direction model.Direction, price, atr float64) (stopLoss, takeProfit float64) {
	volatilityFactor := 0.0
	if price > 0 {
		volatilityFactor = atr / price
	}
	stopMult := 1.5 * (1 + volatilityFactor)
	tpMult := 2.5 * (1 + volatilityFactor*0.5)

	if direction == model.DirectionSell {
		return price + atr*stopMult, price - atr*tpMult
	}
	return price - atr*stopMult, price + atr*tpMult
}

// volumeRising reports whether the recent half of the trailing volume
// window averages above the older half.
func volumeRising(volumes []float64, period int) bool {
	n := len(volumes)
	if n < 4 {
		return false
	}
	window := period
	if window > n {
		window = n
	}
	half := window / 2
	if half < 2 {
		return false
	}
	var older, recent float64
	start := n - window
	for i := start; i < start+half; i++ {
		older += volumes[i]
	}
	for i := n - half; i < n; i++ {
		recent += volumes[i]
	}
	return recent > older
}

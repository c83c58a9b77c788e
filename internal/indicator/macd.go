package indicator

import "signal-systemv1/internal/model"

// MACD calculates Moving Average Convergence Divergence:
// macd = EMA(closes, fast) - EMA(closes, slow). The signal line is the EMA
// of the rolling MACD-line series, rebuilt by recomputing the MACD over
// every trailing window from the first index where the slow EMA is seeded.
// That is O(n·slow) but deterministic and allocation-light.
//
// Returns all zeros when fewer than slow+signalPeriod closes are available.
func MACD(closes []float64, fast, slow, signalPeriod int) model.MACDValue {
	if fast <= 0 || slow <= 0 || signalPeriod <= 0 || len(closes) < slow+signalPeriod {
		return model.MACDValue{}
	}

	// MACD-line history: one value per window ending at index k.
	history := make([]float64, 0, len(closes)-slow+1)
	for k := slow; k <= len(closes); k++ {
		window := closes[:k]
		history = append(history, EMA(window, fast)-EMA(window, slow))
	}

	macdLine := history[len(history)-1]
	signalLine := EMA(history, signalPeriod)

	return model.MACDValue{
		MACD:      macdLine,
		Signal:    signalLine,
		Histogram: macdLine - signalLine,
	}
}

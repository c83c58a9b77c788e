package indicator

import "signal-systemv1/internal/model"

// Divergence detects price/RSI divergence over the trailing lookback window.
//
// Bullish: the most recent close is the lowest close of the window, yet the
// current RSI sits above the RSI recorded at the prior low: price made a
// new low the oscillator refused to confirm. Bearish is the mirror on the
// window high.
//
// rsiSeries must be aligned index-for-index with closes (see RSISeries).
// Fewer than lookback+1 samples yields no divergence.
func Divergence(closes, rsiSeries []float64, lookback int) model.DivergenceValue {
	n := len(closes)
	if lookback <= 0 || n < lookback+1 || len(rsiSeries) != n {
		return model.DivergenceValue{}
	}

	cur := n - 1
	lowIdx, highIdx := cur-lookback, cur-lookback
	for i := cur - lookback; i < cur; i++ {
		if closes[i] < closes[lowIdx] {
			lowIdx = i
		}
		if closes[i] > closes[highIdx] {
			highIdx = i
		}
	}

	return model.DivergenceValue{
		Bullish: closes[cur] <= closes[lowIdx] && rsiSeries[cur] > rsiSeries[lowIdx],
		Bearish: closes[cur] >= closes[highIdx] && rsiSeries[cur] < rsiSeries[highIdx],
	}
}

package indicator

import "math"

// atrFallback is the neutral ATR used when the series is too short to
// compute a true range average. Non-zero so downstream risk math never
// divides by zero.
const atrFallback = 0.001

// ATR calculates the Average True Range: the simple mean of the True Range
// over the trailing period candles, where
// TR = max(high-low, |high-prevClose|, |low-prevClose|).
//
// Needs period+1 candles (each TR consumes the previous close); returns
// 0.001 when history is insufficient or the inputs are mismatched.
func ATR(highs, lows, closes []float64, period int) float64 {
	n := len(closes)
	if period <= 0 || n < period+1 || len(highs) != n || len(lows) != n {
		return atrFallback
	}

	var sum float64
	for i := n - period; i < n; i++ {
		tr := highs[i] - lows[i]
		if hc := math.Abs(highs[i] - closes[i-1]); hc > tr {
			tr = hc
		}
		if lc := math.Abs(lows[i] - closes[i-1]); lc > tr {
			tr = lc
		}
		sum += tr
	}
	return sum / float64(period)
}

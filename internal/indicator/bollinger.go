package indicator

import (
	"math"

	"signal-systemv1/internal/model"
)

// Bollinger calculates Bollinger Bands: SMA(period) middle band, with
// upper/lower at middle ± stdDevMult * population standard deviation of the
// trailing period closes.
//
// With fewer than period closes the bands fall back to ±2% of the last
// price around it. An empty slice yields all zeros.
func Bollinger(closes []float64, period int, stdDevMult float64) model.BollingerValue {
	if len(closes) == 0 {
		return model.BollingerValue{}
	}
	last := closes[len(closes)-1]
	if period <= 0 || len(closes) < period {
		return model.BollingerValue{
			Upper:  last * 1.02,
			Middle: last,
			Lower:  last * 0.98,
		}
	}

	middle := SMA(closes, period)

	window := closes[len(closes)-period:]
	var variance float64
	for _, v := range window {
		d := v - middle
		variance += d * d
	}
	variance /= float64(period)
	sd := math.Sqrt(variance)

	return model.BollingerValue{
		Upper:  middle + stdDevMult*sd,
		Middle: middle,
		Lower:  middle - stdDevMult*sd,
	}
}

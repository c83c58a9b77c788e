package indicator

// EMA calculates the Exponential Moving Average over the full slice.
// The first period values seed the EMA with their simple mean; later values
// apply ema += (value - ema) * 2/(period+1).
//
// Returns the last input value when fewer than period values are available,
// and 0 for an empty slice.
func EMA(values []float64, period int) float64 {
	if len(values) == 0 {
		return 0
	}
	if period <= 0 || len(values) < period {
		return values[len(values)-1]
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)

	k := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		ema += (values[i] - ema) * k
	}
	return ema
}

// SMA calculates the Simple Moving Average of the trailing period values.
// Returns the last input value when fewer than period values are available,
// and 0 for an empty slice.
func SMA(values []float64, period int) float64 {
	if len(values) == 0 {
		return 0
	}
	if period <= 0 || len(values) < period {
		return values[len(values)-1]
	}

	var sum float64
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period)
}

package indicator

import "signal-systemv1/internal/model"

// VolumeProfile calculates the volume-strength reading over the trailing
// period:
//
//   - Strength = clamp(0, 100, latestVolume/avgVolume * 50), so 50 means
//     the latest candle traded exactly average volume.
//   - PriceVolumeCorrelation counts same-sign (price delta, volume delta)
//     pairs minus opposite-sign pairs, normalized to [-1,1]. This is a
//     directional-agreement score, intentionally simpler than a Pearson
//     correlation; flat deltas count toward neither side.
//
// With fewer than two samples the neutral reading {50, 0} is returned.
func VolumeProfile(volumes, closes []float64, period int) model.VolumeValue {
	n := len(volumes)
	if period <= 0 || n < 2 || len(closes) != n {
		return model.VolumeValue{Strength: 50}
	}

	window := period
	if n < window {
		window = n
	}

	var avg float64
	for i := n - window; i < n; i++ {
		avg += volumes[i]
	}
	avg /= float64(window)

	strength := 50.0
	if avg > 0 {
		strength = volumes[n-1] / avg * 50
		if strength > 100 {
			strength = 100
		} else if strength < 0 {
			strength = 0
		}
	}

	// Directional agreement over the delta pairs inside the window.
	agree, pairs := 0, 0
	start := n - window
	if start < 1 {
		start = 1
	}
	for i := start; i < n; i++ {
		dp := closes[i] - closes[i-1]
		dv := volumes[i] - volumes[i-1]
		if dp == 0 || dv == 0 {
			continue
		}
		pairs++
		if (dp > 0) == (dv > 0) {
			agree++
		} else {
			agree--
		}
	}

	corr := 0.0
	if pairs > 0 {
		corr = float64(agree) / float64(pairs)
	}

	return model.VolumeValue{
		Strength:               strength,
		PriceVolumeCorrelation: corr,
	}
}

// Package indicator provides pure technical-indicator calculations over
// candle data.
//
// Every function is total: insufficient history resolves to the documented
// neutral fallback instead of an error. Nothing here performs I/O or holds
// state, so the functions are safe to run concurrently across symbols.
//
// Input slices are ordered oldest-first, matching model.Series.
package indicator

// Params holds the periods and multipliers used by Compute. Zero values are
// not valid; use DefaultParams and override as needed.
type Params struct {
	RSIPeriod  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	EMAShort   int
	EMALong    int
	SMAPeriod  int
	BBPeriod   int
	BBStdDev   float64
	ATRPeriod  int
	VolPeriod  int
	Lookback   int     // divergence lookback
	Tolerance  float64 // support/resistance cluster tolerance (relative)
}

// DefaultParams returns the standard parameter set.
func DefaultParams() Params {
	return Params{
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		EMAShort:   9,
		EMALong:    21,
		SMAPeriod:  50,
		BBPeriod:   20,
		BBStdDev:   2,
		ATRPeriod:  14,
		VolPeriod:  14,
		Lookback:   5,
		Tolerance:  0.0005,
	}
}

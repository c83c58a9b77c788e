package indicator

import "signal-systemv1/internal/model"

// Compute assembles every indicator value as of the most recent candle of
// the series. Like the individual functions it is total: a short or empty
// series produces a snapshot of neutral fallbacks, never an error.
func Compute(series model.Series, p Params) model.IndicatorSnapshot {
	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()

	price := 0.0
	if last, ok := series.Last(); ok {
		price = last.Close
	}

	return model.IndicatorSnapshot{
		RSI:               RSI(closes, p.RSIPeriod),
		MACD:              MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal),
		EMA9:              EMA(closes, p.EMAShort),
		EMA21:             EMA(closes, p.EMALong),
		SMA50:             SMA(closes, p.SMAPeriod),
		Bollinger:         Bollinger(closes, p.BBPeriod, p.BBStdDev),
		ATR:               ATR(highs, lows, closes, p.ATRPeriod),
		Volume:            VolumeProfile(volumes, closes, p.VolPeriod),
		Divergence:        Divergence(closes, RSISeries(closes, p.RSIPeriod), p.Lookback),
		SupportResistance: Levels(highs, lows, price, p.Tolerance),
	}
}

// Package resample aggregates base-timeframe candles into higher-timeframe
// candles. The signal server uses it to derive the multi-timeframe trend
// hints consumed by the decision engine.
package resample

import (
	"time"

	"signal-systemv1/internal/model"
)

// Resample buckets the series into tf-wide candles, aggregating OHLCV per
// bucket. Input must be oldest-first; output is oldest-first. Buckets are
// aligned to tf boundaries via truncation, and partial trailing buckets are
// included (the caller decides whether a forming candle matters).
func Resample(series model.Series, tf time.Duration) model.Series {
	if len(series) == 0 || tf <= 0 {
		return nil
	}

	var out model.Series
	var cur model.Candle
	var curBucket time.Time
	started := false

	for _, c := range series {
		bucket := c.TS.Truncate(tf)
		if !started || !bucket.Equal(curBucket) {
			if started {
				out = append(out, cur)
			}
			cur = model.Candle{
				TS:     bucket,
				Open:   c.Open,
				High:   c.High,
				Low:    c.Low,
				Close:  c.Close,
				Volume: c.Volume,
			}
			curBucket = bucket
			started = true
			continue
		}
		if c.High > cur.High {
			cur.High = c.High
		}
		if c.Low < cur.Low {
			cur.Low = c.Low
		}
		cur.Close = c.Close
		cur.Volume += c.Volume
	}
	out = append(out, cur)
	return out
}

// Package replay streams historical candles from SQLite at a configurable
// speed, feeding the live evaluation loop or a backtest without a real
// market-data connection.
package replay

import (
	"context"
	"log"
	"time"

	"signal-systemv1/internal/model"
	sqlitestore "signal-systemv1/internal/store/sqlite"
)

// Replayer reads a symbol's candle history from SQLite and replays it at a
// speed multiplier.
type Replayer struct {
	reader *sqlitestore.Reader
}

// New creates a Replayer backed by a SQLite reader.
func New(reader *sqlitestore.Reader) *Replayer {
	return &Replayer{reader: reader}
}

// Run replays all candles for the symbol into outCh. speed controls the
// playback rate: 1.0 = real-time, 10.0 = 10x, 0 = as fast as possible.
// fromTS filters candles to those after this Unix timestamp (0 = all).
// The reader returns candles oldest-first, so emission order matches
// series order.
func (r *Replayer) Run(ctx context.Context, symbol string, fromTS int64, speed float64, outCh chan<- model.Candle) error {
	series, err := r.reader.ReadSeries(symbol, fromTS)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		log.Printf("[replay] no candles found for %s", symbol)
		return nil
	}

	log.Printf("[replay] loaded %d candles for %s, speed=%.1fx", len(series), symbol, speed)

	var prevTS time.Time
	emitted := 0

	for _, c := range series {
		select {
		case <-ctx.Done():
			log.Printf("[replay] cancelled after %d candles", emitted)
			return ctx.Err()
		default:
		}

		// Simulate time gaps between candles.
		if speed > 0 && !prevTS.IsZero() {
			gap := c.TS.Sub(prevTS)
			if gap > 0 {
				scaledGap := time.Duration(float64(gap) / speed)
				// Cap max sleep to avoid very long waits
				if scaledGap > 5*time.Second {
					scaledGap = 5 * time.Second
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(scaledGap):
				}
			}
		}
		prevTS = c.TS

		outCh <- c
		emitted++
	}

	log.Printf("[replay] completed: %d candles replayed", emitted)
	return nil
}

// cmd/seed populates the SQLite candle store with a seeded synthetic
// series, so backtests and replays are reproducible end to end.
//
// Usage:
//
//	go run ./cmd/seed --db=data/candles.db --symbol=BTCUSDT --candles=5000 --seed=42
package main

import (
	"flag"
	"log"

	"signal-systemv1/internal/marketdata/synth"
	sqlitestore "signal-systemv1/internal/store/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	dbPath := flag.String("db", "data/candles.db", "Path to SQLite database")
	symbol := flag.String("symbol", "BTCUSDT", "Symbol to write")
	candles := flag.Int("candles", 5000, "Number of candles to generate")
	seed := flag.Int64("seed", 42, "PRNG seed")
	startPrice := flag.Float64("price", 100, "Starting price")
	drift := flag.Float64("drift", 0, "Per-candle drift")
	volatility := flag.Float64("vol", 0.004, "Per-candle volatility")
	flag.Parse()

	cfg := synth.DefaultConfig(*seed)
	cfg.StartPrice = *startPrice
	cfg.Drift = *drift
	cfg.Volatility = *volatility

	series := synth.New(cfg).Series(*candles)

	writer, err := sqlitestore.NewWriter(*dbPath)
	if err != nil {
		log.Fatalf("[seed] sqlite open failed: %v", err)
	}
	defer writer.Close()

	if err := writer.WriteSeries(*symbol, series); err != nil {
		log.Fatalf("[seed] write failed: %v", err)
	}

	first, last := series[0], series[len(series)-1]
	log.Printf("[seed] wrote %d candles for %s: %s .. %s (close %.2f → %.2f)",
		len(series), *symbol,
		first.TS.Format("2006-01-02 15:04"), last.TS.Format("2006-01-02 15:04"),
		first.Close, last.Close)
}

// cmd/signalserver runs the live signal loop: candles stream in from the
// SQLite replayer, every candle is evaluated against the trailing window,
// and the resulting signal is broadcast to WebSocket clients, cached in
// Redis, and counted in Prometheus.
//
// Usage:
//
//	SQLITE_PATH=data/candles.db SYMBOL=BTCUSDT REPLAY_SPEED=60 go run ./cmd/signalserver
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"signal-systemv1/config"
	"signal-systemv1/internal/logger"
	"signal-systemv1/internal/marketdata/replay"
	"signal-systemv1/internal/marketdata/resample"
	"signal-systemv1/internal/metrics"
	"signal-systemv1/internal/model"
	"signal-systemv1/internal/ringbuf"
	"signal-systemv1/internal/server"
	sigengine "signal-systemv1/internal/signal"
	redisstore "signal-systemv1/internal/store/redis"
	sqlitestore "signal-systemv1/internal/store/sqlite"
)

const (
	windowSize  = 200 // trailing candles per evaluation
	ringSize    = 4096
	feedBuffer  = 1024
	idleBackoff = 5 * time.Millisecond
)

func main() {
	cfg := config.Load()
	logger.Init("signalserver", slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics()
	metricsSrv := metrics.NewServer(cfg.MetricsAddr)
	metricsSrv.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		metricsSrv.Stop(shutdownCtx)
	}()

	engineCfg := sigengine.DefaultConfig()
	engineCfg.MinimumSignalStrength = cfg.MinStrength
	engineCfg.RiskPctPerTrade = cfg.RiskPctTrade
	engineCfg.AccountBalance = cfg.Balance
	engine, err := sigengine.New(engineCfg)
	if err != nil {
		log.Fatalf("[signalserver] engine init failed: %v", err)
	}

	reader, err := sqlitestore.NewReader(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("[signalserver] sqlite open failed: %v", err)
	}
	defer reader.Close()

	// Redis is optional: without it the server still evaluates and
	// broadcasts, it just has no latest-signal cache.
	var cache *redisstore.Cache
	if c, err := redisstore.NewCache(redisstore.CacheConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}); err != nil {
		log.Printf("[signalserver] redis unavailable, running without cache: %v", err)
	} else {
		cache = c
		defer cache.Close()
	}

	hub := server.NewHub()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	wsSrv := &http.Server{Addr: cfg.WSAddr, Handler: mux}
	go func() {
		log.Printf("[signalserver] ws listening on %s", cfg.WSAddr)
		if err := wsSrv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("[signalserver] ws server error: %v", err)
		}
	}()
	defer wsSrv.Close()

	// Feed: replayer → channel → SPSC ring → evaluation loop.
	candleCh := make(chan model.Candle, feedBuffer)
	ring := ringbuf.New[model.Candle](ringSize)
	var feedDone atomic.Bool

	go func() {
		if err := replay.New(reader).Run(ctx, cfg.Symbol, 0, cfg.ReplaySpeed, candleCh); err != nil && err != context.Canceled {
			log.Printf("[signalserver] replay error: %v", err)
		}
		close(candleCh)
	}()
	go func() {
		for c := range candleCh {
			if !ring.Push(c) {
				log.Printf("[signalserver] ring full, dropped candle %s", c.TS.Format(time.RFC3339))
			}
		}
		feedDone.Store(true)
	}()

	runLoop(ctx, cfg, engine, ring, &feedDone, hub, cache, m)
	log.Printf("[signalserver] shutdown complete")
}

// runLoop pops candles off the ring, maintains the trailing window, and
// evaluates each candle as it lands.
func runLoop(ctx context.Context, cfg *config.Config, engine *sigengine.Engine,
	ring *ringbuf.Ring[model.Candle], feedDone *atomic.Bool,
	hub *server.Hub, cache *redisstore.Cache, m *metrics.Metrics) {

	window := make(model.Series, 0, windowSize*2)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		candle, ok := ring.Pop()
		if !ok {
			if feedDone.Load() {
				return
			}
			time.Sleep(idleBackoff)
			continue
		}

		window = append(window, candle)
		if len(window) > windowSize {
			window = append(window[:0], window[len(window)-windowSize:]...)
		}

		trends := sigengine.Trends{
			M5:  sigengine.TrendFrom(resample.Resample(window, 5*time.Minute), 9, 21),
			M15: sigengine.TrendFrom(resample.Resample(window, 15*time.Minute), 9, 21),
			M30: sigengine.TrendFrom(resample.Resample(window, 30*time.Minute), 9, 21),
		}

		start := time.Now()
		sig := engine.Evaluate(window, cfg.SentimentScore, trends)
		m.EvaluateDur.Observe(time.Since(start).Seconds())
		m.EvaluationsTotal.Inc()
		m.SignalsTotal.WithLabelValues(string(sig.Direction)).Inc()
		m.LastConfidence.Set(sig.Confidence)
		m.WSClients.Set(float64(hub.ClientCount()))

		hub.Broadcast(cfg.Symbol, &sig)

		if cache != nil {
			if err := cache.PutSignal(ctx, cfg.Symbol, sig); err != nil {
				m.CacheErrors.Inc()
			}
		}

		if sig.Actionable() {
			evalCtx := logger.WithTraceID(ctx, logger.GenerateTraceID(cfg.Symbol, candle.TS))
			attrs := append(logger.LogWithTrace(evalCtx),
				slog.String("direction", string(sig.Direction)),
				slog.Float64("confidence", sig.Confidence),
				slog.Float64("stop_loss", sig.StopLoss),
				slog.Float64("take_profit", sig.TakeProfit),
			)
			slog.Info("signal", attrs...)
		}
	}
}

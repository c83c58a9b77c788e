// Package metrics exposes Prometheus metrics for the signal engine and
// its serving layer.
package metrics

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the signal system.
type Metrics struct {
	EvaluationsTotal prometheus.Counter
	SignalsTotal     *prometheus.CounterVec // labels: direction
	EvaluateDur      prometheus.Histogram
	WSClients        prometheus.Gauge
	LastConfidence   prometheus.Gauge
	CacheErrors      prometheus.Counter
}

// NewMetrics registers and returns all Prometheus metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		EvaluationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalengine_evaluations_total",
			Help: "Total engine evaluations performed",
		}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalengine_signals_total",
			Help: "Signals emitted by direction",
		}, []string{"direction"}),
		EvaluateDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signalengine_evaluate_duration_seconds",
			Help:    "Engine evaluation latency per candle",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signalengine_ws_clients",
			Help: "Connected WebSocket clients",
		}),
		LastConfidence: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signalengine_last_confidence",
			Help: "Confidence of the most recent evaluation",
		}),
		CacheErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalengine_cache_errors_total",
			Help: "Failed latest-signal cache writes (including breaker rejections)",
		}),
	}

	prometheus.MustRegister(
		m.EvaluationsTotal,
		m.SignalsTotal,
		m.EvaluateDur,
		m.WSClients,
		m.LastConfidence,
		m.CacheErrors,
	)
	return m
}

// Server runs an HTTP server exposing /metrics.
type Server struct {
	addr string
	srv  *http.Server
}

// NewServer creates a metrics server.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		addr: addr,
		srv: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[metrics] server listening on %s", s.addr)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("[metrics] server error: %v", err)
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) {
	s.srv.Shutdown(ctx)
}

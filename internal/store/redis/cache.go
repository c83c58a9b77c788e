// Package redis caches the latest evaluated signal per symbol so API and
// UI layers can read current state without touching the engine. The cache
// is an explicit injected object, never process-wide global state.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"signal-systemv1/internal/model"

	goredis "github.com/go-redis/redis/v8"
)

const (
	defaultTTL     = 30 * time.Minute
	signalKey      = "signal:latest:"
	breakerTrips   = 5
	breakerTimeout = 10 * time.Second
)

// CacheConfig configures the signal cache.
type CacheConfig struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // per-signal expiry, defaults to 30m
}

// Cache stores the latest signal per symbol in Redis. Writes run through a
// circuit breaker so a dead Redis degrades to dropped cache updates
// instead of blocking the evaluation loop.
type Cache struct {
	client  *goredis.Client
	ttl     time.Duration
	breaker *CircuitBreaker
}

// NewCache creates a Cache and pings the server.
func NewCache(cfg CacheConfig) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	log.Printf("[redis] connected to %s", cfg.Addr)
	return &Cache{
		client:  client,
		ttl:     ttl,
		breaker: NewCircuitBreaker(breakerTrips, breakerTimeout),
	}, nil
}

// PutSignal stores the signal as the symbol's latest. Returns
// ErrCircuitOpen while the breaker is open.
func (c *Cache) PutSignal(ctx context.Context, symbol string, sig model.Signal) error {
	data, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("marshal signal: %w", err)
	}
	return c.breaker.Execute(func() error {
		return c.client.Set(ctx, signalKey+symbol, data, c.ttl).Err()
	})
}

// LatestSignal reads the symbol's latest signal. ok is false when no
// signal is cached.
func (c *Cache) LatestSignal(ctx context.Context, symbol string) (model.Signal, bool, error) {
	var sig model.Signal
	data, err := c.client.Get(ctx, signalKey+symbol).Bytes()
	if err == goredis.Nil {
		return sig, false, nil
	}
	if err != nil {
		return sig, false, fmt.Errorf("redis get signal: %w", err)
	}
	if err := json.Unmarshal(data, &sig); err != nil {
		return sig, false, fmt.Errorf("unmarshal signal: %w", err)
	}
	return sig, true, nil
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

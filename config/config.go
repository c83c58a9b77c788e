package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Infrastructure
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	MetricsAddr   string
	WSAddr        string

	// Instrument and feed
	Symbol      string
	ReplaySpeed float64 // 0 = as fast as possible

	// Engine inputs. Sentiment is a mocked upstream score in [-1,1].
	SentimentScore float64
	MinStrength    float64
	RiskPctTrade   float64
	Balance        float64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		SQLitePath:    getEnv("SQLITE_PATH", "data/candles.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),
		WSAddr:        getEnv("WS_ADDR", ":8081"),

		Symbol:      getEnv("SYMBOL", "BTCUSDT"),
		ReplaySpeed: getEnvFloat("REPLAY_SPEED", 0),

		SentimentScore: getEnvFloat("SENTIMENT_SCORE", 0),
		MinStrength:    getEnvFloat("MIN_SIGNAL_STRENGTH", 70),
		RiskPctTrade:   getEnvFloat("RISK_PCT_PER_TRADE", 0.02),
		Balance:        getEnvFloat("ACCOUNT_BALANCE", 10000),
	}
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] invalid float for %s: %q, using %.4f", key, v, fallback)
		return fallback
	}
	return f
}

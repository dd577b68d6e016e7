// Package alphavantage provides a client for the Alpha Vantage stock market API.
package alphavantage

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the public Alpha Vantage endpoint.
	DefaultBaseURL = "https://www.alphavantage.co"
	// DefaultIntradayInterval is the bar size requested for intraday series.
	DefaultIntradayInterval = "60min"
	// DefaultCallsPerMinute matches the free-tier quota.
	DefaultCallsPerMinute = 5
)

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey           string        // API key appended to every request as "apikey"
	BaseURL          string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	IntradayInterval string        // TIME_SERIES_INTRADAY interval
	CallsPerMinute   int           // client-side throttle, 0 disables it
	Timeout          time.Duration // HTTP request timeout
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:           os.Getenv("ALPHA_VANTAGE_API_KEY"),
		BaseURL:          os.Getenv("ALPHA_VANTAGE_BASE_URL"),
		IntradayInterval: os.Getenv("ALPHA_VANTAGE_INTRADAY_INTERVAL"),
		CallsPerMinute:   DefaultCallsPerMinute,
		Timeout:          10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.IntradayInterval == "" {
		cfg.IntradayInterval = DefaultIntradayInterval
	}
	if v, err := strconv.Atoi(os.Getenv("ALPHA_VANTAGE_CALLS_PER_MINUTE")); err == nil && v >= 0 {
		cfg.CallsPerMinute = v
	}
	return cfg
}

// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"stock_market/internal/platform/externalapi/alphavantage"
	infrahttp "stock_market/internal/platform/http"
	"stock_market/internal/shared/ratelimiter"
)

// NewAlphaVantageClient creates a fully configured Alpha Vantage client with
// HTTP client and per-minute throttling.
func NewAlphaVantageClient() *alphavantage.Client {
	cfg := alphavantage.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.CallsPerMinute, time.Minute)
	return alphavantage.NewClient(cfg, httpClient, limiter)
}

// Package entity defines the domain models for the stockinfo feature.
package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// timestampLayouts are the formats Alpha Vantage uses in intraday rows.
var timestampLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

// IntradayPoint is one bar of an intraday series, reduced to its close.
type IntradayPoint struct {
	Timestamp string          // As sent by the source (e.g., "2024-01-02 15:00:00")
	Close     decimal.Decimal // Closing price of the bar
}

// Time parses Timestamp.
func (p IntradayPoint) Time() (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, p.Timestamp); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", p.Timestamp)
}

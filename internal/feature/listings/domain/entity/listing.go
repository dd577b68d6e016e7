// Package entity defines the domain models for the listings feature.
package entity

// Listing is one row of the exchange listing dump: a tradable company and
// where it trades. Symbol is unique within one refresh generation.
type Listing struct {
	Name     string // Company name (e.g., "Apple Inc")
	Symbol   string // Ticker symbol (e.g., "AAPL")
	Exchange string // Listing exchange (e.g., "NASDAQ")
}

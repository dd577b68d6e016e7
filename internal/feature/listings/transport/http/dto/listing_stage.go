// Package dto defines data transfer objects for the listings HTTP API.
package dto

import (
	"stock_market/internal/feature/listings/domain/entity"
	"stock_market/internal/shared/resource"
)

// ListingItem represents a listing in the API response.
type ListingItem struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// LoadingEvent is the data of a "loading" SSE event.
type LoadingEvent struct {
	IsLoading bool `json:"isLoading"`
}

// ErrorEvent is the data of an "error" SSE event.
type ErrorEvent struct {
	Message string `json:"message"`
}

// FromStage converts a stage into the payload of its SSE event.
// Success stages become a JSON array of listings.
func FromStage(s resource.Resource[[]entity.Listing]) any {
	switch s.Kind {
	case resource.KindSuccess:
		return ToListingItems(s.Data)
	case resource.KindError:
		return ErrorEvent{Message: s.Message}
	default:
		return LoadingEvent{IsLoading: s.IsLoading}
	}
}

// ToListingItems converts listings to response items. Never returns nil.
func ToListingItems(ls []entity.Listing) []ListingItem {
	out := make([]ListingItem, 0, len(ls))
	for _, l := range ls {
		out = append(out, ListingItem{Symbol: l.Symbol, Name: l.Name, Exchange: l.Exchange})
	}
	return out
}

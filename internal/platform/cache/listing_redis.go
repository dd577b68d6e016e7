// Package cache provides Redis-backed implementations of repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_market/internal/feature/listings/domain/entity"
	"stock_market/internal/feature/listings/usecase"
)

// hsetChunk bounds the number of fields sent in one HSET.
const hsetChunk = 500

// ListingRedis stores listings in a single Redis hash: field = symbol, value = JSON.
// Search results are ordered by symbol.
type ListingRedis struct {
	rdb       *redis.Client
	namespace string
	ttl       func() time.Duration
}

var _ usecase.ListingRepository = (*ListingRedis)(nil)

// listingJSON is the stored form of one listing.
type listingJSON struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// NewListingRedis creates a Redis listing store.
// If namespace is empty, it uses "listings". If ttl is nil, the hash never expires;
// otherwise the hash expires after ttl() once a write completes.
func NewListingRedis(rdb *redis.Client, namespace string, ttl func() time.Duration) *ListingRedis {
	if namespace == "" {
		namespace = "listings"
	}
	return &ListingRedis{rdb: rdb, namespace: namespace, ttl: ttl}
}

// Search returns listings whose name or symbol contains query, case-insensitively.
func (r *ListingRedis) Search(ctx context.Context, query string) ([]entity.Listing, error) {
	all, err := r.rdb.HGetAll(ctx, r.namespace).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: search listings: %w", usecase.ErrStore, err)
	}

	q := strings.ToLower(query)
	out := make([]entity.Listing, 0, len(all))
	for symbol, raw := range all {
		var v listingJSON
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			// Skip corrupted entry; the next refresh overwrites it
			slog.Warn("skipping corrupted cached listing", "symbol", symbol, "error", err)
			continue
		}
		if q == "" ||
			strings.Contains(strings.ToLower(v.Name), q) ||
			strings.Contains(strings.ToLower(v.Symbol), q) {
			out = append(out, entity.Listing{Name: v.Name, Symbol: v.Symbol, Exchange: v.Exchange})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

// Clear deletes the whole hash.
func (r *ListingRedis) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.namespace).Err(); err != nil {
		return fmt.Errorf("%w: clear listings: %w", usecase.ErrStore, err)
	}
	return nil
}

// InsertAll upserts listings by symbol. Later duplicates win.
func (r *ListingRedis) InsertAll(ctx context.Context, listings []entity.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	values := make([]any, 0, 2*hsetChunk)
	flush := func() error {
		if len(values) == 0 {
			return nil
		}
		err := r.rdb.HSet(ctx, r.namespace, values...).Err()
		values = values[:0]
		return err
	}

	for _, l := range listings {
		b, err := json.Marshal(listingJSON{Symbol: l.Symbol, Name: l.Name, Exchange: l.Exchange})
		if err != nil {
			return fmt.Errorf("%w: encode listing %s: %w", usecase.ErrStore, l.Symbol, err)
		}
		values = append(values, l.Symbol, string(b))
		if len(values) >= 2*hsetChunk {
			if err := flush(); err != nil {
				return fmt.Errorf("%w: insert listings: %w", usecase.ErrStore, err)
			}
		}
	}
	if err := flush(); err != nil {
		return fmt.Errorf("%w: insert listings: %w", usecase.ErrStore, err)
	}

	if r.ttl != nil {
		// Best effort: the data is already written
		if err := r.rdb.Expire(ctx, r.namespace, r.ttl()).Err(); err != nil {
			slog.Warn("failed to set listings expiry", "key", r.namespace, "error", err)
		}
	}
	return nil
}

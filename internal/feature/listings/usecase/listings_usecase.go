// Package usecase implements the cache-aside listing synchronization.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"stock_market/internal/feature/listings/domain/entity"
	"stock_market/internal/shared/resource"
)

// ListingRepository abstracts the local durable cache of listings.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ListingRepository interface {
	// Search returns listings whose name or symbol contains query, case-insensitively.
	// An empty query matches every row. Order is stable while no writes happen.
	Search(ctx context.Context, query string) ([]entity.Listing, error)
	// Clear removes every row.
	Clear(ctx context.Context) error
	// InsertAll upserts listings by symbol.
	InsertAll(ctx context.Context, listings []entity.Listing) error
}

// ListingSource fetches the raw listing dump from the remote source of truth.
type ListingSource interface {
	FetchListings(ctx context.Context) (io.ReadCloser, error)
}

// ListingDecoder turns the raw listing dump into listings.
type ListingDecoder interface {
	Decode(r io.Reader) ([]entity.Listing, error)
}

// Stage is one observation of a SyncListings stream.
type Stage = resource.Resource[[]entity.Listing]

// ListingsUsecase serves cached listings and reconciles them from the remote source.
type ListingsUsecase struct {
	repo    ListingRepository
	source  ListingSource
	decoder ListingDecoder
}

// NewListingsUsecase creates a ListingsUsecase.
func NewListingsUsecase(repo ListingRepository, source ListingSource, decoder ListingDecoder) *ListingsUsecase {
	return &ListingsUsecase{repo: repo, source: source, decoder: decoder}
}

// SyncListings returns the staged result stream for one listing query.
//
// Stages arrive in this order on the returned channel, which is closed afterwards:
//
//	Loading(true), Success(cached), then either
//	  Loading(false)                                  cache hit, no remote call
//	  Error(MsgLoadFailed)                            remote or store failure
//	  Success(all rows after refresh), Loading(false) refreshed
//
// The remote is skipped when the cache returned rows (or query filtered them)
// and forceRemote is false. Cancelling ctx stops the producer at its next
// send and prevents the cache write. The post-refresh read is unfiltered.
func (u *ListingsUsecase) SyncListings(ctx context.Context, forceRemote bool, query string) <-chan Stage {
	out := make(chan Stage)
	go func() {
		defer close(out)
		u.sync(ctx, forceRemote, query, func(s Stage) bool {
			if ctx.Err() != nil {
				return false
			}
			select {
			case out <- s:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()
	return out
}

// sync runs the protocol, stopping as soon as emit reports the consumer is gone.
func (u *ListingsUsecase) sync(ctx context.Context, forceRemote bool, query string, emit func(Stage) bool) {
	if !emit(resource.Loading[[]entity.Listing](true)) {
		return
	}

	local, err := u.repo.Search(ctx, query)
	if err != nil {
		slog.Error("failed to read cached listings", "query", query, "error", err)
		emit(resource.Error[[]entity.Listing](MsgLoadFailed))
		return
	}
	if !emit(resource.Success(local)) {
		return
	}

	isCacheEmpty := len(local) == 0 && strings.TrimSpace(query) == ""
	if !isCacheEmpty && !forceRemote {
		emit(resource.Loading[[]entity.Listing](false))
		return
	}

	fetched, err := u.fetchRemote(ctx)
	if err != nil {
		slog.Warn("failed to refresh listings", "force_remote", forceRemote, "error", err)
		emit(resource.Error[[]entity.Listing](MsgLoadFailed))
		return
	}

	// 購読者がいなくなっていればキャッシュを書き換えない
	if ctx.Err() != nil {
		return
	}

	// Clear と InsertAll の間は非アトミック。並行する読み取りは一時的に空を観測し得る
	refreshed, err := u.replace(ctx, fetched)
	if err != nil {
		slog.Error("failed to store refreshed listings", "count", len(fetched), "error", err)
		emit(resource.Error[[]entity.Listing](MsgLoadFailed))
		return
	}
	slog.Info("listings refreshed", "count", len(refreshed))

	if !emit(resource.Success(refreshed)) {
		return
	}
	emit(resource.Loading[[]entity.Listing](false))
}

// fetchRemote downloads and decodes the listing dump.
func (u *ListingsUsecase) fetchRemote(ctx context.Context) ([]entity.Listing, error) {
	body, err := u.source.FetchListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	defer func() {
		if err := body.Close(); err != nil {
			slog.Warn("failed to close listings stream", "error", err)
		}
	}()

	listings, err := u.decoder.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return listings, nil
}

// replace clears the cache, inserts listings, and re-reads the full set.
func (u *ListingsUsecase) replace(ctx context.Context, listings []entity.Listing) ([]entity.Listing, error) {
	if err := u.repo.Clear(ctx); err != nil {
		return nil, err
	}
	if err := u.repo.InsertAll(ctx, listings); err != nil {
		return nil, err
	}
	return u.repo.Search(ctx, "")
}

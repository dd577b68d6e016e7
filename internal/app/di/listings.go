package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	listingadapters "stock_market/internal/feature/listings/adapters"
	listingusecase "stock_market/internal/feature/listings/usecase"
	"stock_market/internal/platform/cache"
)

// listingsExpiryHour は銘柄一覧キャッシュを失効させる時刻（米国東部時間）です。
const listingsExpiryHour = 8

// NewListingRepository creates a ListingRepository implementation.
// If Redis is available, it returns a Redis-backed implementation that expires daily.
// Otherwise, it falls back to the SQL store.
func NewListingRepository(rdb *redis.Client, db *gorm.DB) listingusecase.ListingRepository {
	if rdb != nil {
		return cache.NewListingRedis(rdb, "listings", cache.DailyExpiry(listingsExpiryHour, "America/New_York"))
	}
	return listingadapters.NewListingRepository(db)
}

// NewListingsUsecase wires the listing store, remote source and CSV schema.
func NewListingsUsecase(repo listingusecase.ListingRepository, source listingusecase.ListingSource) *listingusecase.ListingsUsecase {
	return listingusecase.NewListingsUsecase(repo, source, listingadapters.NewListingDecoder())
}

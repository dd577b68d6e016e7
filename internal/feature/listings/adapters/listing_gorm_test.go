package adapters

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stock_market/internal/feature/listings/domain/entity"
	"stock_market/internal/feature/listings/usecase"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: は接続ごとに別DBになるため1接続に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&ListingModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

var sampleListings = []entity.Listing{
	{Symbol: "AAPL", Name: "Apple Inc", Exchange: "NASDAQ"},
	{Symbol: "IBM", Name: "International Business Machines", Exchange: "NYSE"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ"},
	{Symbol: "PAPL", Name: "Pineapple Holdings", Exchange: "NYSE"},
	{Symbol: "SAN", Name: "ÉLECTRICITÉ DE FRANCE", Exchange: "EPA"},
}

func TestNewListingRepository(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewListingRepository(db)

	assert.NotNil(t, repo, "repository should not be nil")
	assert.NotNil(t, repo.db, "database connection should not be nil")
}

// TestListingGorm_Search は部分一致検索の各種シナリオを検証します。
func TestListingGorm_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		query       string
		wantSymbols []string
	}{
		{name: "empty query returns all in insertion order", query: "", wantSymbols: []string{"AAPL", "IBM", "MSFT", "PAPL", "SAN"}},
		{name: "matches symbol case-insensitively", query: "msft", wantSymbols: []string{"MSFT"}},
		{name: "matches name substring", query: "MACHINES", wantSymbols: []string{"IBM"}},
		{name: "matches either field", query: "apple", wantSymbols: []string{"AAPL", "PAPL"}},
		{name: "symbol substring", query: "apl", wantSymbols: []string{"AAPL", "PAPL"}},
		{name: "non-ASCII name lower-case query", query: "électricité", wantSymbols: []string{"SAN"}},
		{name: "non-ASCII name mixed-case query", query: "Électricité de", wantSymbols: []string{"SAN"}},
		{name: "no match", query: "tesla", wantSymbols: []string{}},
		{name: "wildcards are literal", query: "%", wantSymbols: []string{}},
		{name: "underscore is literal", query: "_", wantSymbols: []string{}},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewListingRepository(setupTestDB(t))
			require.NoError(t, repo.InsertAll(context.Background(), sampleListings))

			got, err := repo.Search(context.Background(), tt.query)
			require.NoError(t, err)

			symbols := make([]string, 0, len(got))
			for _, l := range got {
				symbols = append(symbols, l.Symbol)
			}
			assert.Equal(t, tt.wantSymbols, symbols)
		})
	}
}

func TestListingGorm_InsertAll_UpsertsBySymbol(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewListingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.InsertAll(ctx, sampleListings[:2]))
	require.NoError(t, repo.InsertAll(ctx, []entity.Listing{
		{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NYSE"},
		{Symbol: "TSLA", Name: "Tesla", Exchange: "NASDAQ"},
		{Symbol: "TSLA", Name: "Tesla Inc", Exchange: "NASDAQ"},
	}))

	got, err := repo.Search(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []entity.Listing{
		{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NYSE"},
		{Symbol: "IBM", Name: "International Business Machines", Exchange: "NYSE"},
		{Symbol: "TSLA", Name: "Tesla Inc", Exchange: "NASDAQ"},
	}, got)

	var count int64
	db.Model(&ListingModel{}).Count(&count)
	assert.Equal(t, int64(3), count, "one row per symbol")
}

func TestListingGorm_InsertAll_Empty(t *testing.T) {
	t.Parallel()

	repo := NewListingRepository(setupTestDB(t))
	assert.NoError(t, repo.InsertAll(context.Background(), nil))
}

func TestListingGorm_InsertAll_ManyBatches(t *testing.T) {
	t.Parallel()

	repo := NewListingRepository(setupTestDB(t))
	ctx := context.Background()

	many := make([]entity.Listing, 0, 3*insertBatchSize+7)
	for i := 0; i < cap(many); i++ {
		many = append(many, entity.Listing{Symbol: fmt.Sprintf("S%04d", i), Name: "Company", Exchange: "NYSE"})
	}
	require.NoError(t, repo.InsertAll(ctx, many))

	got, err := repo.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, len(many))
}

func TestListingGorm_Clear(t *testing.T) {
	t.Parallel()

	repo := NewListingRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.InsertAll(ctx, sampleListings))
	require.NoError(t, repo.Clear(ctx))

	got, err := repo.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, got)

	// 空のテーブルに対するClearもエラーにならない
	assert.NoError(t, repo.Clear(ctx))
}

func TestListingGorm_StoreFailure(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	// テーブルを作成しないので全操作が失敗する
	repo := NewListingRepository(db)
	ctx := context.Background()

	_, err = repo.Search(ctx, "")
	assert.ErrorIs(t, err, usecase.ErrStore)
	assert.ErrorIs(t, repo.Clear(ctx), usecase.ErrStore)
	assert.ErrorIs(t, repo.InsertAll(ctx, sampleListings), usecase.ErrStore)
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", escapeLike("abc"))
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}

package adapters

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_market/internal/feature/listings/domain/entity"
	"stock_market/internal/feature/listings/usecase"
)

// insertBatchSize keeps each INSERT under SQLite's bound-variable limit.
const insertBatchSize = 200

// listingGorm はListingRepositoryのgorm実装です（SQLite / PostgreSQL）。
type listingGorm struct {
	db *gorm.DB
}

var _ usecase.ListingRepository = (*listingGorm)(nil)

// NewListingRepository は指定されたDB接続でlistingGormリポジトリの新しいインスタンスを生成します。
func NewListingRepository(db *gorm.DB) *listingGorm {
	return &listingGorm{db: db}
}

// ListingModel is the company_listings table row.
type ListingModel struct {
	ID       uint   `gorm:"primaryKey"`
	Symbol   string `gorm:"size:32;not null;uniqueIndex"`
	Name     string `gorm:"size:255;not null"`
	Exchange string `gorm:"size:64;not null;default:''"`
	// 検索用の小文字化済みカラム。SQLiteのLOWER()はASCIIしか変換しないためGo側で書き込む
	NameLC   string `gorm:"column:name_lc;size:255;not null;default:''"`
	SymbolLC string `gorm:"column:symbol_lc;size:32;not null;default:''"`
}

func (ListingModel) TableName() string {
	return "company_listings"
}

func toModel(e entity.Listing) ListingModel {
	return ListingModel{
		Symbol:   e.Symbol,
		Name:     e.Name,
		Exchange: e.Exchange,
		NameLC:   strings.ToLower(e.Name),
		SymbolLC: strings.ToLower(e.Symbol),
	}
}

// Search はnameまたはsymbolの部分一致（大文字小文字を区別しない）でid順に返します。
func (r *listingGorm) Search(ctx context.Context, query string) ([]entity.Listing, error) {
	var rows []ListingModel
	q := r.db.WithContext(ctx).Order("id ASC")
	if query != "" {
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		q = q.Where(`name_lc LIKE ? ESCAPE '\' OR symbol_lc LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: search listings: %w", usecase.ErrStore, err)
	}

	out := make([]entity.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Listing{
			Name:     m.Name,
			Symbol:   m.Symbol,
			Exchange: m.Exchange,
		})
	}
	return out, nil
}

// Clear は全行を削除します。
func (r *listingGorm) Clear(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&ListingModel{}).Error
	if err != nil {
		return fmt.Errorf("%w: clear listings: %w", usecase.ErrStore, err)
	}
	return nil
}

// InsertAll はsymbolの一意制約でupsertします。
func (r *listingGorm) InsertAll(ctx context.Context, listings []entity.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	// 同一バッチ内の重複symbolはON CONFLICTで扱えないため、後勝ちで事前に畳み込む
	ms := make([]ListingModel, 0, len(listings))
	pos := make(map[string]int, len(listings))
	for _, e := range listings {
		if i, ok := pos[e.Symbol]; ok {
			ms[i] = toModel(e)
			continue
		}
		pos[e.Symbol] = len(ms)
		ms = append(ms, toModel(e))
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "exchange", "name_lc", "symbol_lc"}),
	}).CreateInBatches(&ms, insertBatchSize).Error
	if err != nil {
		return fmt.Errorf("%w: insert listings: %w", usecase.ErrStore, err)
	}
	return nil
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

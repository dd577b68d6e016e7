// Package adapters はlistingsフィーチャーのデコーダーとリポジトリ実装を提供します。
package adapters

import (
	"io"

	"stock_market/internal/feature/listings/domain/entity"
	"stock_market/internal/feature/listings/usecase"
	"stock_market/internal/platform/csvdecode"
)

// listingMinFields は銘柄一覧の1行に必要な最小フィールド数です。
// 列: 0=ID(無視), 1=symbol, 2=name, 3=exchange
const listingMinFields = 4

// ListingDecoder は銘柄一覧CSVをentity.Listingのスライスに変換します。
type ListingDecoder struct{}

var _ usecase.ListingDecoder = ListingDecoder{}

// NewListingDecoder はListingDecoderを生成します。
func NewListingDecoder() ListingDecoder {
	return ListingDecoder{}
}

// Decode はヘッダー行を読み飛ばし、条件を満たさない行を除外して全件を返します。
func (ListingDecoder) Decode(r io.Reader) ([]entity.Listing, error) {
	return csvdecode.Decode(r, ParseListingLine)
}

// ParseListingLine は1行分のフィールドをListingに変換します。
// フィールド数が足りない行、symbolまたはnameが空の行はfalseを返します。
func ParseListingLine(fields []string) (entity.Listing, bool) {
	if len(fields) < listingMinFields {
		return entity.Listing{}, false
	}
	l := entity.Listing{
		Symbol:   csvdecode.Field(fields, 1),
		Name:     csvdecode.Field(fields, 2),
		Exchange: csvdecode.Field(fields, 3),
	}
	if l.Symbol == "" || l.Name == "" {
		return entity.Listing{}, false
	}
	return l, true
}

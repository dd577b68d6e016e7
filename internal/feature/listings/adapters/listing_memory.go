package adapters

import (
	"context"
	"strings"
	"sync"

	"stock_market/internal/feature/listings/domain/entity"
	"stock_market/internal/feature/listings/usecase"
)

// listingMemory はListingRepositoryのインメモリ実装です。
// 挿入順を保持し、同じsymbolは元の位置のまま上書きします。
type listingMemory struct {
	mu    sync.RWMutex
	rows  []entity.Listing
	index map[string]int // symbol -> rows のインデックス
}

var _ usecase.ListingRepository = (*listingMemory)(nil)

// NewListingMemory は空のインメモリリポジトリを生成します。
func NewListingMemory() *listingMemory {
	return &listingMemory{index: map[string]int{}}
}

// Search はnameまたはsymbolにqueryを含む行を挿入順で返します（大文字小文字を区別しない）。
func (r *listingMemory) Search(ctx context.Context, query string) ([]entity.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Listing, 0, len(r.rows))
	for _, l := range r.rows {
		if q == "" ||
			strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Symbol), q) {
			out = append(out, l)
		}
	}
	return out, nil
}

// Clear は全行を削除します。
func (r *listingMemory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = nil
	r.index = map[string]int{}
	return nil
}

// InsertAll はsymbolをキーにupsertします。
func (r *listingMemory) InsertAll(ctx context.Context, listings []entity.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range listings {
		if i, ok := r.index[l.Symbol]; ok {
			r.rows[i] = l
			continue
		}
		r.index[l.Symbol] = len(r.rows)
		r.rows = append(r.rows, l)
	}
	return nil
}

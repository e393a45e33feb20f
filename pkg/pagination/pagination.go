package pagination

import (
	"eFurnitureMarket/domain"

	"gorm.io/gorm"
)

// MaxPageSize caps a single page so a caller cannot drag the whole table
// through one request. DefaultPageSize applies when a caller does not ask
// for a size.
const (
	MaxPageSize     = 100
	DefaultPageSize = 20
)

// Page carries one page of a filtered, ordered result set together with the
// pre-paging total.
type Page[T any] struct {
	PageIndex       int   `json:"page_index"`
	PageSize        int   `json:"page_size"`
	TotalItemsCount int64 `json:"total_items_count"`
	Items           []T   `json:"items"`
}

func New[T any](pageIndex, pageSize int, total int64, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		PageIndex:       pageIndex,
		PageSize:        pageSize,
		TotalItemsCount: total,
		Items:           items,
	}
}

// Normalize rejects negative indices and non-positive sizes and clamps the
// size to MaxPageSize.
func Normalize(pageIndex, pageSize int) (int, int, error) {
	if pageIndex < 0 || pageSize <= 0 {
		return 0, 0, domain.ErrInvalidPage
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageIndex, pageSize, nil
}

// Scope applies offset/limit paging to a gorm query. Callers are expected to
// have normalized the inputs first.
func Scope(pageIndex, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(pageIndex * pageSize).Limit(pageSize)
	}
}

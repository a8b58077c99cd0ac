// Package query turns filter parameters into deterministic, ordered,
// sliced result sets. Every list is ordered by ascending id before any
// predicate or slicing, so page offsets are stable between writes.
package query

import "gorm.io/gorm"

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 6
)

// Page is 1-based. Zero or negative values fall back to the defaults,
// so the computed offset can never go negative.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	number := p.Number
	if number < 1 {
		number = DefaultPageNumber
	}
	return (number - 1) * p.Limit()
}

func (p Page) Limit() int {
	if p.Size < 1 {
		return DefaultPageSize
	}
	return p.Size
}

func (p Page) paginate(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC").Offset(p.Offset()).Limit(p.Limit())
}

// ProductFilter supports a minimum-price predicate, applied only when set.
type ProductFilter struct {
	Price *float64
	Page
}

func (f ProductFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Price != nil {
			db = db.Where("price >= ?", *f.Price)
		}
		return f.paginate(db)
	}
}

// SaleFilter supports an owning-profile equality predicate and a
// minimum-quantity predicate. Predicates are conjunctive.
type SaleFilter struct {
	ProfileUserID *int
	Quantity      *int
	Page
}

func (f SaleFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.ProfileUserID != nil {
			db = db.Where("profile_user_id = ?", *f.ProfileUserID)
		}
		if f.Quantity != nil {
			db = db.Where("quantity >= ?", *f.Quantity)
		}
		return f.paginate(db)
	}
}

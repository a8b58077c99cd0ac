package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Expiration carries both eviction timers for one entry. The entry is
// evicted when either elapses: Absolute counts from the write, Sliding
// is reset on every read.
type Expiration struct {
	Absolute time.Duration
	Sliding  time.Duration
}

// DefaultExpiration matches the TTLs used across all entity keys.
func DefaultExpiration() Expiration {
	return Expiration{Absolute: 10 * time.Minute, Sliding: 5 * time.Minute}
}

// Store is a key/value byte cache with per-entry expiration. It has no
// knowledge of entity semantics; keys are built with the helpers below.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, exp Expiration) error
	Remove(ctx context.Context, key string) error
}

// Cache keys live in one place so they do not drift between the read
// and invalidation paths.

func ProductKey(id int) string        { return fmt.Sprintf("Product-%d", id) }
func ProductNameKey(name string) string { return "Product-" + name }
func CategoryKey(id int) string       { return fmt.Sprintf("Category-%d", id) }
func CategoryTitleKey(title string) string { return "Category-" + title }
func ProfileUserKey(id int) string    { return fmt.Sprintf("User-%d", id) }
func SaleKey(id int) string           { return fmt.Sprintf("Sale-%d", id) }

const (
	AllCategoriesKey = "All-Categories"
	AllUsersKey      = "All-Users"
)

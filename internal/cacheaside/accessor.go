// Package cacheaside wraps a cache.Store with read-through population
// and write-path invalidation. It holds no entity logic: filtering,
// existence checks and association maintenance all live with the caller.
package cacheaside

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Skotchmaster/inventory/internal/cache"
	"github.com/Skotchmaster/inventory/internal/logging"
)

// schemaVersion is embedded in every cached payload. Bump it whenever a
// cached shape changes so stale entries decode as a deterministic miss
// instead of unmarshalling into the wrong fields.
const schemaVersion = 1

type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

type Accessor struct {
	store cache.Store
}

func New(store cache.Store) *Accessor {
	return &Accessor{store: store}
}

// ReadThrough returns the cached value for key, or loads it from the
// source of truth on a miss and populates the cache with both TTLs.
// Every cache failure short of a loader error degrades to a miss: a
// read must stay available when the cache is not.
func ReadThrough[T any](ctx context.Context, a *Accessor, key string, exp cache.Expiration, load func(ctx context.Context) (T, error)) (T, error) {
	l := logging.FromContext(ctx)

	raw, err := a.store.Get(ctx, key)
	if err == nil {
		var env envelope
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && env.V == schemaVersion {
			var v T
			if jsonErr := json.Unmarshal(env.Data, &v); jsonErr == nil {
				return v, nil
			}
		}
		l.Debug("cache_entry_unreadable", "key", key)
	} else if !errors.Is(err, cache.ErrMiss) {
		l.Warn("cache_get_failed", "key", key, "error", err)
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		l.Warn("cache_marshal_failed", "key", key, "error", err)
		return v, nil
	}
	payload, err := json.Marshal(envelope{V: schemaVersion, Data: data})
	if err != nil {
		return v, nil
	}
	if err := a.store.Set(ctx, key, payload, exp); err != nil {
		l.Warn("cache_set_failed", "key", key, "error", err)
	}
	return v, nil
}

// Invalidate removes the given keys. Removing an absent key is a no-op,
// and a failing removal never propagates to the caller: the write has
// already committed, the entry will age out by TTL.
func (a *Accessor) Invalidate(ctx context.Context, keys ...string) {
	l := logging.FromContext(ctx)
	for _, key := range keys {
		if err := a.store.Remove(ctx, key); err != nil {
			l.Warn("cache_invalidate_failed", "key", key, "error", err)
		}
	}
}

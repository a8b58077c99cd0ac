package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *Memory {
	t.Helper()
	m := NewMemory()
	t.Cleanup(m.Close)
	return m
}

func TestMemorySetGet(t *testing.T) {
	m := newMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), DefaultExpiration()))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryGetMissing(t *testing.T) {
	m := newMemoryStore(t)

	_, err := m.Get(context.Background(), "absent")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemoryAbsoluteExpiry(t *testing.T) {
	m := newMemoryStore(t)
	ctx := context.Background()

	exp := Expiration{Absolute: 30 * time.Millisecond, Sliding: time.Hour}
	require.NoError(t, m.Set(ctx, "k", []byte("v"), exp))

	time.Sleep(60 * time.Millisecond)

	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemorySlidingExpiry(t *testing.T) {
	m := newMemoryStore(t)
	ctx := context.Background()

	exp := Expiration{Absolute: time.Hour, Sliding: 40 * time.Millisecond}
	require.NoError(t, m.Set(ctx, "k", []byte("v"), exp))

	time.Sleep(80 * time.Millisecond)

	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemoryReadResetsSlidingWindow(t *testing.T) {
	m := newMemoryStore(t)
	ctx := context.Background()

	exp := Expiration{Absolute: time.Hour, Sliding: 80 * time.Millisecond}
	require.NoError(t, m.Set(ctx, "k", []byte("v"), exp))

	// keep touching the entry inside the sliding window; it must survive
	// well past the original window
	for i := 0; i < 4; i++ {
		time.Sleep(40 * time.Millisecond)
		_, err := m.Get(ctx, "k")
		require.NoError(t, err)
	}
}

func TestMemorySlidingCappedByAbsoluteDeadline(t *testing.T) {
	m := newMemoryStore(t)
	ctx := context.Background()

	exp := Expiration{Absolute: 60 * time.Millisecond, Sliding: 40 * time.Millisecond}
	require.NoError(t, m.Set(ctx, "k", []byte("v"), exp))

	time.Sleep(30 * time.Millisecond)
	_, err := m.Get(ctx, "k") // resets sliding, but the absolute cap holds
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, err = m.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemoryRemove(t *testing.T) {
	m := newMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), DefaultExpiration()))
	require.NoError(t, m.Remove(ctx, "k"))

	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)

	// removing an absent key is a no-op
	require.NoError(t, m.Remove(ctx, "k"))
}

func TestMemorySetCopiesValue(t *testing.T) {
	m := newMemoryStore(t)
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, m.Set(ctx, "k", value, DefaultExpiration()))
	value[0] = 'X'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestMemoryGetCopiesValue(t *testing.T) {
	m := newMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("original"), DefaultExpiration()))

	first, err := m.Get(ctx, "k")
	require.NoError(t, err)
	first[0] = 'X'

	// mutating a returned slice must not corrupt the stored entry
	second, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), second)
}

package cache

import (
	"context"
	"errors"
	"region-path-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource serves fixed answers and counts lookups per room.
type countingSource struct {
	matrices map[domain.RoomName]*domain.CostMatrix
	blocked  map[domain.RoomName]bool
	calls    map[domain.RoomName]int
	err      error
}

func newCountingSource() *countingSource {
	return &countingSource{
		matrices: map[domain.RoomName]*domain.CostMatrix{},
		blocked:  map[domain.RoomName]bool{},
		calls:    map[domain.RoomName]int{},
	}
}

func (s *countingSource) CostMatrix(_ context.Context, room domain.RoomName) (*domain.CostMatrix, bool, error) {
	s.calls[room]++
	if s.err != nil {
		return nil, false, s.err
	}
	if s.blocked[room] {
		return nil, true, nil
	}
	if m, ok := s.matrices[room]; ok {
		return m.Clone(), false, nil
	}
	return nil, false, nil
}

func newTestCache(t *testing.T, src *countingSource) (*RedisMatrixCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisMatrixCache(client, src, time.Minute), mr
}

func TestRedisMatrixCacheRoundTrip(t *testing.T) {
	src := newCountingSource()
	m := domain.NewCostMatrix()
	m.Set(10, 20, 255)
	m.Set(1, 2, 7)
	src.matrices["W1N1"] = m
	src.blocked["W2N1"] = true

	c, mr := newTestCache(t, src)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, blocked, err := c.CostMatrix(ctx, "W1N1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, blocked)
		assert.EqualValues(t, 255, got.Get(10, 20))
		assert.EqualValues(t, 7, got.Get(1, 2))

		_, blocked, err = c.CostMatrix(ctx, "W2N1")
		require.NoError(t, err)
		assert.True(t, blocked)

		got, blocked, err = c.CostMatrix(ctx, "E0S0")
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.False(t, blocked)
	}

	assert.Equal(t, 1, src.calls["W1N1"])
	assert.Equal(t, 1, src.calls["W2N1"])
	assert.Equal(t, 1, src.calls["E0S0"])
	assert.True(t, mr.Exists("costmatrix:W1N1"))
}

func TestRedisMatrixCacheExpiry(t *testing.T) {
	src := newCountingSource()
	c, mr := newTestCache(t, src)
	ctx := context.Background()

	_, _, err := c.CostMatrix(ctx, "W1N1")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, _, err = c.CostMatrix(ctx, "W1N1")
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls["W1N1"])
}

func TestRedisMatrixCacheInvalidate(t *testing.T) {
	src := newCountingSource()
	c, _ := newTestCache(t, src)
	ctx := context.Background()

	_, _, _ = c.CostMatrix(ctx, "W1N1")
	require.NoError(t, c.Invalidate(ctx, "W1N1"))
	_, _, _ = c.CostMatrix(ctx, "W1N1")

	assert.Equal(t, 2, src.calls["W1N1"])
}

func TestRedisMatrixCacheCorruptEntry(t *testing.T) {
	src := newCountingSource()
	c, mr := newTestCache(t, src)
	require.NoError(t, mr.Set("costmatrix:W1N1", "\x01short"))

	got, blocked, err := c.CostMatrix(context.Background(), "W1N1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, blocked)
	assert.Equal(t, 1, src.calls["W1N1"])
}

func TestRedisMatrixCacheRedisDown(t *testing.T) {
	src := newCountingSource()
	src.blocked["W1N1"] = true
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })
	c := NewRedisMatrixCache(client, src, time.Minute)

	_, blocked, err := c.CostMatrix(context.Background(), "W1N1")
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestRedisMatrixCacheSourceError(t *testing.T) {
	src := newCountingSource()
	src.err = errors.New("db down")
	c, mr := newTestCache(t, src)

	_, _, err := c.CostMatrix(context.Background(), "W1N1")
	require.ErrorIs(t, err, src.err)
	assert.False(t, mr.Exists("costmatrix:W1N1"))
}

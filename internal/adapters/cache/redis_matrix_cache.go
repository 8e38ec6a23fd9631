package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"region-path-service/internal/domain"
	"region-path-service/internal/platform/obs"
	"region-path-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "costmatrix:"

// Leading byte of a cached entry.
const (
	entryEmpty   byte = 0
	entryMatrix  byte = 1
	entryBlocked byte = 2
)

// RedisMatrixCache is a read-through Redis cache in front of an obstacle source.
// Entries expire after TTL; Redis failures fall back to the source.
type RedisMatrixCache struct {
	Client *redis.Client
	Source ports.ObstacleSource
	TTL    time.Duration
}

func NewRedisMatrixCache(client *redis.Client, source ports.ObstacleSource, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{Client: client, Source: source, TTL: ttl}
}

func cacheKey(room domain.RoomName) string { return keyPrefix + string(room) }

// CostMatrix implements ports.ObstacleSource.
func (c *RedisMatrixCache) CostMatrix(
	ctx context.Context,
	room domain.RoomName,
) (_ *domain.CostMatrix, _ bool, err error) {
	defer obs.Time(ctx, "obstacles.cache.CostMatrix")(&err)

	if c.Source == nil {
		return nil, false, errors.New("matrix cache: source is nil")
	}

	if c.Client != nil {
		b, err := c.Client.Get(ctx, cacheKey(room)).Bytes()
		switch {
		case err == nil:
			m, blocked, derr := decodeEntry(b)
			if derr == nil {
				return m, blocked, nil
			}
			log.Printf("matrix cache: discard entry room=%s err=%v", room, derr)
		case !errors.Is(err, redis.Nil):
			log.Printf("matrix cache: get failed room=%s err=%v", room, err)
		}
	}

	m, blocked, err := c.Source.CostMatrix(ctx, room)
	if err != nil {
		return nil, false, fmt.Errorf("matrix cache: %w", err)
	}

	if c.Client != nil {
		if err := c.Client.Set(ctx, cacheKey(room), encodeEntry(m, blocked), c.TTL).Err(); err != nil {
			log.Printf("matrix cache: set failed room=%s err=%v", room, err)
		}
	}
	return m, blocked, nil
}

// Invalidate drops the cached entry of a room.
func (c *RedisMatrixCache) Invalidate(ctx context.Context, room domain.RoomName) error {
	if c.Client == nil {
		return nil
	}
	if err := c.Client.Del(ctx, cacheKey(room)).Err(); err != nil {
		return fmt.Errorf("matrix cache: invalidate %s: %w", room, err)
	}
	return nil
}

func encodeEntry(m *domain.CostMatrix, blocked bool) []byte {
	switch {
	case blocked:
		return []byte{entryBlocked}
	case m == nil:
		return []byte{entryEmpty}
	}
	return append([]byte{entryMatrix}, m.Bytes()...)
}

func decodeEntry(b []byte) (*domain.CostMatrix, bool, error) {
	if len(b) == 0 {
		return nil, false, errors.New("empty entry")
	}
	switch b[0] {
	case entryEmpty:
		return nil, false, nil
	case entryBlocked:
		return nil, true, nil
	case entryMatrix:
		m, err := domain.CostMatrixFromBytes(b[1:])
		if err != nil {
			return nil, false, err
		}
		return m, false, nil
	}
	return nil, false, fmt.Errorf("unknown entry tag %d", b[0])
}

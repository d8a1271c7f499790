// Package cache holds the Redis-backed stores. Each store falls back to process
// memory when Redis is not configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

// memStore is the in-process fallback used when Redis is unavailable
type memStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]memEntry), now: time.Now}
}

func (m *memStore) get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

func (m *memStore) set(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{value: value, expiresAt: m.now().Add(ttl)}
}

// incr bumps a counter, starting a ttl window on the first hit like INCR+EXPIRE.
func (m *memStore) incr(key string, ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	e, ok := m.entries[key]
	if !ok || now.After(e.expiresAt) {
		e = memEntry{value: []byte("0"), expiresAt: now.Add(ttl)}
	}
	n, _ := strconv.Atoi(string(e.value))
	n++
	e.value = []byte(strconv.Itoa(n))
	m.entries[key] = e
	return n
}

func (m *memStore) del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

type leaderboardCache struct {
	client *goredis.Client
	ttl    time.Duration
	mem    *memStore
}

// NewLeaderboardCache stores leaderboards as JSON for ttl. A nil client keeps them in memory.
func NewLeaderboardCache(client *goredis.Client, ttl time.Duration) domain.LeaderboardCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &leaderboardCache{client: client, ttl: ttl, mem: newMemStore()}
}

func leaderboardKey(categoryID string) string {
	return redis.Key("leaderboard", categoryID)
}

// Get returns (nil, nil) on a miss.
func (c *leaderboardCache) Get(ctx context.Context, categoryID string) (*domain.Leaderboard, error) {
	key := leaderboardKey(categoryID)

	var raw []byte
	if c.client != nil {
		val, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("leaderboard cache get: %w", err)
		}
		raw = val
	} else {
		val, ok := c.mem.get(key)
		if !ok {
			return nil, nil
		}
		raw = val
	}

	var board domain.Leaderboard
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, fmt.Errorf("leaderboard cache decode: %w", err)
	}
	return &board, nil
}

func (c *leaderboardCache) Set(ctx context.Context, board *domain.Leaderboard) error {
	raw, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("leaderboard cache encode: %w", err)
	}

	key := leaderboardKey(board.CategoryID)
	if c.client != nil {
		return c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	c.mem.set(key, raw, c.ttl)
	return nil
}

func (c *leaderboardCache) Invalidate(ctx context.Context, categoryID string) error {
	key := leaderboardKey(categoryID)
	if c.client != nil {
		return c.client.Del(ctx, key).Err()
	}
	c.mem.del(key)
	return nil
}
